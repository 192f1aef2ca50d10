package preview

import (
	"regexp"
	"sort"
)

// NFTLink is a recognized token link. URL is the exact matched substring.
type NFTLink struct {
	Marketplace Marketplace `json:"marketplace"`
	TokenID     string      `json:"tokenId"`
	Contract    string      `json:"contract,omitempty"`
	URL         string      `json:"url"`
}

// CollectionLink is a recognized collection link, it carries either a
// contract (or a path to resolve) or a project id.
type CollectionLink struct {
	Marketplace Marketplace `json:"marketplace"`
	Contract    string      `json:"contract,omitempty"`
	ProjectID   string      `json:"projectId,omitempty"`
	URL         string      `json:"url"`
}

type hit struct {
	pattern int
	loc     []int
}

func (h hit) overlaps(o hit) bool {
	return h.loc[0] < o.loc[1] && o.loc[0] < h.loc[1]
}

func (h hit) group(text string, i int) string {
	if i <= 0 || 2*i+1 >= len(h.loc) || h.loc[2*i] < 0 {
		return ""
	}
	return text[h.loc[2*i]:h.loc[2*i+1]]
}

func (h hit) url(text string) string {
	return text[h.loc[0]:h.loc[1]]
}

// find runs each pattern once over text, most specific first, so only the
// first occurrence per pattern is seen. A looser pattern's hit is dropped when
// a stricter pattern already claimed that text. Hits come back in text order.
func find(text string, patterns []*regexp.Regexp) []hit {
	var hits []hit
	for i, re := range patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		h := hit{pattern: i, loc: loc}
		claimed := false
		for _, prev := range hits {
			if prev.overlaps(h) {
				claimed = true
				break
			}
		}
		if !claimed {
			hits = append(hits, h)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].loc[0] < hits[j].loc[0] })
	return hits
}

// DetectNFTLinks returns the token links in text, grouped by marketplace in
// the order of Marketplaces.
func DetectNFTLinks(text string) []NFTLink {
	var links []NFTLink
	for _, m := range Marketplaces {
		patterns := marketplaceRules[m].tokens
		res := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			res[i] = p.re
		}
		for _, h := range find(text, res) {
			p := patterns[h.pattern]
			id := h.group(text, p.token)
			if id == "" {
				continue
			}
			links = append(links, NFTLink{
				Marketplace: m,
				TokenID:     id,
				Contract:    h.group(text, p.contract),
				URL:         h.url(text),
			})
		}
	}
	return links
}

// DetectCollectionLinks returns the collection links in text.
func DetectCollectionLinks(text string) []CollectionLink {
	var links []CollectionLink
	for _, m := range Marketplaces {
		patterns := marketplaceRules[m].collections
		res := make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			res[i] = p.re
		}
		for _, h := range find(text, res) {
			p := patterns[h.pattern]
			link := CollectionLink{
				Marketplace: m,
				Contract:    h.group(text, p.contract),
				ProjectID:   h.group(text, p.project),
				URL:         h.url(text),
			}
			if link.Contract == "" && link.ProjectID == "" {
				continue
			}
			links = append(links, link)
		}
	}
	return links
}
