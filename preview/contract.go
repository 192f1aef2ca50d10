package preview

import (
	"context"
	"fmt"
	"github.com/mr-tron/base58"
	"strings"
)

const (
	contractPrefix = "KT1"
	contractLength = 36
)

// IsContractAddress reports whether s is a canonical contract address:
// "KT1" followed by 33 base58 characters.
func IsContractAddress(s string) bool {
	if len(s) != contractLength || !strings.HasPrefix(s, contractPrefix) {
		return false
	}
	_, err := base58.Decode(s[len(contractPrefix):])
	return err == nil
}

// legacy and aliased marketplace paths whose contract never changes
var knownContracts = map[string]string{
	"hicetnunc": "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
	"hen":       "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
	"objkt":     "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
	"teia":      "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
	"fxhash":    "KT1KEa8z6vWXDJrVqtMrAeDVzsvxat3kHaCE",
	"versum":    "KT1LjmAdYQCLBjwv4S2oFkEzyHVkomAf5MrW",
}

// PathResolver looks a marketplace path up remotely.
type PathResolver interface {
	ContractByPath(ctx context.Context, path string) (string, error)
}

// Resolver turns a marketplace path fragment into a contract address, static
// table first, then the marketplace indexer.
type Resolver struct {
	static map[string]string
	remote PathResolver
}

func NewResolver(remote PathResolver) *Resolver {
	return &Resolver{static: knownContracts, remote: remote}
}

// Resolve never reports anything but ErrNotFound; the cause is wrapped in the message.
func (r *Resolver) Resolve(ctx context.Context, path string) (string, error) {
	if IsContractAddress(path) {
		return path, nil
	}
	key := strings.ToLower(strings.TrimSpace(path))
	if key == "" {
		return "", fmt.Errorf("resolve empty path: %w", ErrNotFound)
	}
	if addr, ok := r.static[key]; ok {
		return addr, nil
	}
	if r.remote == nil {
		return "", fmt.Errorf("resolve %s: %w", path, ErrNotFound)
	}
	addr, err := r.remote.ContractByPath(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w (%s)", path, ErrNotFound, err)
	}
	if !IsContractAddress(addr) {
		return "", fmt.Errorf("resolve %s: invalid contract %q: %w", path, addr, ErrNotFound)
	}
	return addr, nil
}
