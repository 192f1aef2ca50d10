package preview

import (
	"fmt"
	"github.com/shopspring/decimal"
	"github.com/xyths/tezos-preview/indexer"
	"strconv"
	"strings"
	"time"
)

const (
	ipfsScheme  = "ipfs://"
	ipfsGateway = "https://ipfs.io/ipfs/"

	// a generative project is represented by at most this many sampled tokens
	gallerySample = 10
)

// 1 tez = 1,000,000 mutez
var mutezPerTez = decimal.New(1, 6)

// ToTez converts an integer mutez amount to tez.
func ToTez(mutez decimal.Decimal) decimal.Decimal {
	return mutez.Div(mutezPerTez)
}

func tezPtr(mutez decimal.NullDecimal) *decimal.Decimal {
	if !mutez.Valid {
		return nil
	}
	d := ToTez(mutez.Decimal)
	return &d
}

func newPrice(mutez decimal.Decimal) *Price {
	return &Price{Amount: ToTez(mutez), Currency: Currency, Symbol: CurrencySymbol}
}

// IPFSToHTTP rewrites ipfs:// URIs to the public gateway, anything else is returned as is.
func IPFSToHTTP(uri string) string {
	if strings.HasPrefix(uri, ipfsScheme) {
		return ipfsGateway + strings.TrimPrefix(uri, ipfsScheme)
	}
	return uri
}

// pickImage prefers display, then thumbnail, then artifact unless it is an inline data uri.
func pickImage(display, thumbnail, artifact string) string {
	switch {
	case display != "":
		return IPFSToHTTP(display)
	case thumbnail != "":
		return IPFSToHTTP(thumbnail)
	case artifact != "" && !strings.HasPrefix(artifact, "data:"):
		return IPFSToHTTP(artifact)
	}
	return ""
}

func valueOr(p *int64, v int64) int64 {
	if p == nil {
		return v
	}
	return *p
}

// Normalizer turns upstream payloads into display records. Now is used for
// dutch auction pricing, time.Now if nil.
type Normalizer struct {
	Now func() time.Time
}

func (n Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now()
	}
	return n.Now()
}

// NFTFromObjkt builds the record of a marketplace indexer token.
func (n Normalizer) NFTFromObjkt(raw *indexer.ObjktToken, link NFTLink) *NFT {
	nft := &NFT{
		ID:          raw.TokenID,
		Name:        raw.Name,
		Description: raw.Description,
		ImageURL:    pickImage(raw.DisplayURI, raw.ThumbnailURI, raw.ArtifactURI),
		Marketplace: MarketplaceRef{Name: link.Marketplace.String(), URL: link.URL},
	}
	if nft.ID == "" {
		nft.ID = link.TokenID
	}
	if nft.Name == "" {
		nft.Name = fmt.Sprintf("#%s", nft.ID)
	}

	if len(raw.Creators) > 0 {
		c := raw.Creators[0]
		nft.Creator = creatorFromHolder(c.CreatorAddress, c.Holder)
	} else if raw.Fa != nil && raw.Fa.Creator != nil {
		nft.Creator = creatorFromHolder(raw.Fa.Creator.Address, raw.Fa.Creator)
	}

	if raw.Fa != nil {
		nft.Collection = &CollectionInfo{
			Name:     raw.Fa.Name,
			Contract: raw.Fa.Contract,
			Stats:    faStats(raw.Fa),
		}
	}

	for _, a := range raw.Attributes {
		if a.Attribute.Name == "" {
			continue
		}
		nft.Attributes = append(nft.Attributes, Attribute{Name: a.Attribute.Name, Value: string(a.Attribute.Value)})
	}

	if raw.Mime != "" || raw.ArtifactURI != "" || raw.DisplayURI != "" || raw.ThumbnailURI != "" {
		nft.Media = &Media{
			MimeType:     raw.Mime,
			ArtifactURI:  raw.ArtifactURI,
			DisplayURI:   raw.DisplayURI,
			ThumbnailURI: raw.ThumbnailURI,
		}
	}

	n.applySale(nft, raw)
	return nft
}

// applySale picks the first applicable sale type:
// open edition > listing > english auction > dutch auction > none.
func (n Normalizer) applySale(nft *NFT, raw *indexer.ObjktToken) {
	supply := raw.Supply
	listings := tezListings(raw.ListingsActive)
	switch {
	case raw.OpenEditionActive != nil:
		oe := raw.OpenEditionActive
		nft.SaleType = SaleOpenEdition
		nft.Price = newPrice(oe.Price)
		nft.OpenEdition = &OpenEditionInfo{
			MaxPerWallet: oe.MaxPerWallet,
			StartTime:    oe.StartTime,
			EndTime:      oe.EndTime,
			Minted:       supply,
		}
	case len(listings) > 0:
		l := cheapest(listings)
		nft.SaleType = SaleListing
		nft.Price = newPrice(l.Price)
		nft.Edition = &Edition{Current: l.AmountLeft, Total: valueOr(supply, 0)}
	case len(raw.EnglishAuctionsActive) > 0:
		a := raw.EnglishAuctionsActive[0]
		p := a.Reserve
		if a.HighestBid.Valid && a.HighestBid.Decimal.IsPositive() {
			p = a.HighestBid.Decimal
		}
		nft.SaleType = SaleEnglishAuction
		nft.Price = newPrice(p)
		nft.Edition = &Edition{Current: 1, Total: valueOr(supply, 1)}
	case len(raw.DutchAuctionsActive) > 0:
		nft.SaleType = SaleDutchAuction
		nft.Price = newPrice(dutchPrice(raw.DutchAuctionsActive[0], n.now()))
		nft.Edition = &Edition{Current: 1, Total: valueOr(supply, 1)}
	default:
		nft.SaleType = SaleNone
		if supply != nil {
			nft.Edition = &Edition{Current: 1, Total: *supply}
		}
	}
}

// tezListings keeps the listings priced in tez, other currencies have their own scale.
func tezListings(listings []indexer.ObjktListing) []indexer.ObjktListing {
	var out []indexer.ObjktListing
	for _, l := range listings {
		if l.CurrencyID == indexer.CurrencyTez {
			out = append(out, l)
		}
	}
	return out
}

func cheapest(listings []indexer.ObjktListing) indexer.ObjktListing {
	best := listings[0]
	for _, l := range listings[1:] {
		if l.Price.LessThan(best.Price) {
			best = l
		}
	}
	return best
}

// dutchPrice is the linearly descending price at now, in mutez.
func dutchPrice(a indexer.ObjktDutchAuction, now time.Time) decimal.Decimal {
	if a.StartTime == nil || a.EndTime == nil || !a.EndTime.After(*a.StartTime) {
		return a.StartPrice
	}
	if now.Before(*a.StartTime) {
		return a.StartPrice
	}
	if !now.Before(*a.EndTime) {
		return a.EndPrice
	}
	elapsed := decimal.NewFromInt(now.Sub(*a.StartTime).Nanoseconds())
	total := decimal.NewFromInt(a.EndTime.Sub(*a.StartTime).Nanoseconds())
	if total.IsZero() {
		return a.StartPrice
	}
	drop := a.StartPrice.Sub(a.EndPrice).Mul(elapsed).Div(total)
	return a.StartPrice.Sub(drop).Round(0)
}

func creatorFromHolder(address string, h *indexer.ObjktHolder) Creator {
	c := Creator{Address: address}
	if h == nil {
		return c
	}
	if c.Address == "" {
		c.Address = h.Address
	}
	c.Alias = h.Alias
	c.Discord = h.Discord
	c.Twitter = h.Twitter
	c.Website = h.Website
	c.Description = h.Description
	return c
}

// NFTFromTzkt builds the record of a chain indexer token. The chain indexer
// knows nothing about sales.
func (n Normalizer) NFTFromTzkt(raw *indexer.TzktToken, link NFTLink) *NFT {
	md := raw.Metadata
	if md == nil {
		md = &indexer.TzktMetadata{}
	}
	nft := &NFT{
		ID:          raw.TokenID,
		Name:        md.Name,
		Description: md.Description,
		ImageURL:    pickImage(md.DisplayURI, md.ThumbnailURI, md.ArtifactURI),
		SaleType:    SaleNone,
		Marketplace: MarketplaceRef{Name: link.Marketplace.String(), URL: link.URL},
	}
	if nft.ID == "" {
		nft.ID = link.TokenID
	}
	if nft.Name == "" {
		nft.Name = fmt.Sprintf("#%s", nft.ID)
	}
	if nft.ImageURL == "" {
		nft.ImageURL = IPFSToHTTP(md.Image)
	}

	switch {
	case raw.FirstMinter != nil:
		nft.Creator = Creator{Address: raw.FirstMinter.Address, Alias: raw.FirstMinter.Alias}
	case raw.Account != nil:
		nft.Creator = Creator{Address: raw.Account.Address, Alias: raw.Account.Alias}
	case len(md.Creators) > 0:
		nft.Creator = Creator{Address: md.Creators[0]}
	}

	if raw.Contract != nil && raw.Contract.Alias != "" {
		nft.Collection = &CollectionInfo{Name: raw.Contract.Alias, Contract: raw.Contract.Address}
	}

	if supply, err := strconv.ParseInt(raw.TotalSupply, 10, 64); err == nil {
		nft.Edition = &Edition{Current: 1, Total: supply}
	}

	for _, a := range md.Attributes {
		if a.Name == "" {
			continue
		}
		nft.Attributes = append(nft.Attributes, Attribute{Name: a.Name, Value: string(a.Value)})
	}

	if md.ArtifactURI != "" || md.DisplayURI != "" || md.ThumbnailURI != "" {
		media := &Media{ArtifactURI: md.ArtifactURI, DisplayURI: md.DisplayURI, ThumbnailURI: md.ThumbnailURI}
		for _, f := range md.Formats {
			if f.URI == md.ArtifactURI {
				media.MimeType = f.MimeType
				break
			}
		}
		nft.Media = media
	}
	return nft
}

func faStats(fa *indexer.ObjktFa) Stats {
	return Stats{
		FloorPrice:  tezPtr(fa.FloorPrice),
		Items:       fa.Items,
		Editions:    fa.Editions,
		Owners:      fa.Owners,
		Volume24h:   tezPtr(fa.Volume24h),
		VolumeTotal: tezPtr(fa.VolumeTotal),
	}
}

// CollectionFromFa builds the record of a direct collection row.
func CollectionFromFa(fa *indexer.ObjktFa, link CollectionLink) *Collection {
	c := &Collection{
		Contract:    fa.Contract,
		Name:        fa.Name,
		Description: fa.Description,
		Logo:        IPFSToHTTP(fa.Logo),
		Type:        fa.CollectionType,
		Stats:       faStats(fa),
		Socials:     Socials{Twitter: fa.Twitter, Website: fa.Website, Discord: fa.Discord},
		Marketplace: MarketplaceRef{Name: link.Marketplace.String(), URL: link.URL},
	}
	if c.Contract == "" {
		c.Contract = link.Contract
	}
	if c.Name == "" {
		c.Name = c.Contract
	}
	if fa.Creator != nil && fa.Creator.Address != "" {
		c.VerifiedCreators = append(c.VerifiedCreators, fa.Creator.Address)
	}
	for _, co := range fa.Collaborators {
		if co.CollaboratorAddress != "" {
			c.VerifiedCreators = append(c.VerifiedCreators, co.CollaboratorAddress)
		}
	}
	return c
}

// CollectionFromGallery synthesizes a collection from a generative project.
// The contract comes from the first sampled token, stats from the project aggregates.
func CollectionFromGallery(g *indexer.ObjktGallery, link CollectionLink) (*Collection, error) {
	tokens := g.Tokens
	if len(tokens) > gallerySample {
		tokens = tokens[:gallerySample]
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("project %s has no tokens: %w", link.ProjectID, ErrNotFound)
	}
	first := tokens[0].Token
	if !IsContractAddress(first.FaContract) {
		return nil, fmt.Errorf("project %s: invalid contract %q: %w", link.ProjectID, first.FaContract, ErrNotFound)
	}

	c := &Collection{
		Contract:    first.FaContract,
		Name:        g.Name,
		Description: g.Description,
		Logo:        IPFSToHTTP(g.Logo),
		Stats: Stats{
			FloorPrice:  tezPtr(g.FloorPrice),
			Items:       g.Items,
			Editions:    g.Editions,
			Owners:      g.Owners,
			Volume24h:   tezPtr(g.Volume24h),
			VolumeTotal: tezPtr(g.VolumeTotal),
		},
		Marketplace: MarketplaceRef{Name: link.Marketplace.String(), URL: link.URL},
	}
	if first.Fa != nil {
		if c.Name == "" {
			c.Name = first.Fa.Name
		}
		if c.Logo == "" {
			c.Logo = IPFSToHTTP(first.Fa.Logo)
		}
	}
	if c.Name == "" {
		c.Name = link.ProjectID
	}
	for _, cu := range g.Curators {
		if cu.CuratorAddress != "" {
			c.VerifiedCreators = append(c.VerifiedCreators, cu.CuratorAddress)
		}
	}
	return c, nil
}
