package preview

import (
	"regexp"
)

// Marketplace is the closed set of supported marketplaces.
type Marketplace int

const (
	OBJKT Marketplace = iota
	FxHash
	Teia
	Versum
	Bootloader
	EditArt
)

// Marketplaces in matching order.
var Marketplaces = []Marketplace{OBJKT, FxHash, Teia, Versum, Bootloader, EditArt}

// Source is the upstream a marketplace's tokens are read from.
type Source int

const (
	FromMarket Source = iota
	FromChain
)

const (
	base58Chars = `[1-9A-HJ-NP-Za-km-z]`
	kt1         = `KT1` + base58Chars + `{33}`
	pathSegment = `[A-Za-z0-9_-]+`
)

// tokenPattern captures a token id and optionally a contract (group index 0 = absent).
type tokenPattern struct {
	re       *regexp.Regexp
	contract int
	token    int
}

// collectionPattern captures either a contract (or path) or a project id.
type collectionPattern struct {
	re       *regexp.Regexp
	contract int
	project  int
}

type rules struct {
	name string
	home string
	// contractPath is handed to the resolver when a token link carries no contract.
	contractPath string
	source       Source
	tokens       []tokenPattern
	collections  []collectionPattern
}

func host(h string) string {
	return `https?://(?:www\.)?` + regexp.QuoteMeta(h)
}

var marketplaceRules = map[Marketplace]rules{
	OBJKT: {
		name:         "OBJKT",
		home:         "https://objkt.com",
		contractPath: "hicetnunc",
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("objkt.com") + `/(?:asset|tokens)/(` + pathSegment + `)/(\d+)`), contract: 1, token: 2},
			{re: regexp.MustCompile(host("objkt.com") + `/objkt/(\d+)`), token: 1},
		},
		collections: []collectionPattern{
			{re: regexp.MustCompile(host("objkt.com") + `/collections?/` + pathSegment + `/projects/(\d+)`), project: 1},
			{re: regexp.MustCompile(host("objkt.com") + `/collections?/(` + pathSegment + `)`), contract: 1},
		},
	},
	FxHash: {
		name:         "fxhash",
		home:         "https://www.fxhash.xyz",
		contractPath: "fxhash",
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("fxhash.xyz") + `/gentk/(\d+)`), token: 1},
		},
		collections: []collectionPattern{
			{re: regexp.MustCompile(host("fxhash.xyz") + `/generative/(\d+)`), project: 1},
			{re: regexp.MustCompile(host("fxhash.xyz") + `/project/([A-Za-z0-9_-]+)`), project: 1},
		},
	},
	Teia: {
		name:         "Teia",
		home:         "https://teia.art",
		contractPath: "hicetnunc",
		source:       FromChain,
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("teia.art") + `/objkt/(\d+)`), token: 1},
		},
	},
	Versum: {
		name: "Versum",
		home: "https://versum.xyz",
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("versum.xyz") + `/token/(` + pathSegment + `)/(\d+)`), contract: 1, token: 2},
		},
	},
	Bootloader: {
		name:         "Bootloader",
		home:         "https://www.bootloader.art",
		contractPath: "bootloader",
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("bootloader.art") + `/token/(\d+)`), token: 1},
		},
		collections: []collectionPattern{
			{re: regexp.MustCompile(host("bootloader.art") + `/generator/(\d+)`), project: 1},
		},
	},
	EditArt: {
		name: "EditArt",
		home: "https://www.editart.xyz",
		tokens: []tokenPattern{
			{re: regexp.MustCompile(host("editart.xyz") + `/token-detail/(` + kt1 + `)/(\d+)`), contract: 1, token: 2},
		},
		collections: []collectionPattern{
			{re: regexp.MustCompile(host("editart.xyz") + `/series/(` + kt1 + `)`), contract: 1},
		},
	},
}

func (m Marketplace) String() string {
	if r, ok := marketplaceRules[m]; ok {
		return r.name
	}
	return "unknown"
}

func (m Marketplace) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Home is the marketplace's front page.
func (m Marketplace) Home() string {
	return marketplaceRules[m].home
}

func (m Marketplace) source() Source {
	return marketplaceRules[m].source
}

func (m Marketplace) contractPath() string {
	return marketplaceRules[m].contractPath
}
