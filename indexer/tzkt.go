package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	DefaultTzktURL = "https://api.tzkt.io"

	EndpointTzktTokens = "tzkt.tokens"
)

// Tzkt is the chain indexer client (plain REST).
type Tzkt struct {
	client
}

func NewTzkt(baseURL string, gate *Gate, opts ...Option) *Tzkt {
	if baseURL == "" {
		baseURL = DefaultTzktURL
	}
	return &Tzkt{client: newClient(baseURL, gate, opts...)}
}

// Token requests `/v1/tokens?contract=..&tokenId=..&limit=1`. The response
// may be an array or a single object.
func (t *Tzkt) Token(ctx context.Context, contract, tokenID string) (*TzktToken, error) {
	q := url.Values{}
	q.Set("contract", contract)
	q.Set("tokenId", tokenID)
	q.Set("limit", "1")
	u := fmt.Sprintf("%s/v1/tokens?%s", t.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newError(ErrTransport, EndpointTzktTokens, "create request: %s", err)
	}
	body, err := t.do(ctx, EndpointTzktTokens, req)
	if err != nil {
		return nil, err
	}
	token, err := decodeTzktToken(body)
	if err != nil {
		return nil, newError(ErrTransport, EndpointTzktTokens, "decode response: %s", err)
	}
	token = token.Flatten()
	if token == nil || (token.TokenID == "" && token.Metadata == nil) {
		return nil, newError(ErrNotFound, EndpointTzktTokens, "token %s/%s", contract, tokenID)
	}
	return token, nil
}

func decodeTzktToken(body []byte) (*TzktToken, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	if body[0] == '[' {
		var tokens []TzktToken
		if err := json.Unmarshal(body, &tokens); err != nil {
			return nil, err
		}
		if len(tokens) == 0 {
			return nil, nil
		}
		return &tokens[0], nil
	}
	var token TzktToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}
