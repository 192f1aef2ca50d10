package card

import (
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyths/tezos-preview/preview"
	"strings"
	"testing"
	"time"
)

func fieldValue(e *discordgo.MessageEmbed, name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func listedNFT() *preview.NFT {
	floor := decimal.RequireFromString("1.23456")
	return &preview.NFT{
		ID:          "42",
		Name:        "Glass",
		Description: "a study in light",
		ImageURL:    "https://ipfs.io/ipfs/QmDisplay",
		Creator:     preview.Creator{Address: "tz1UBZUkXpKGhYsP5KtzDNqLLchwF4uHrGjw", Alias: "artist", Discord: "artist"},
		Collection: &preview.CollectionInfo{
			Name:  "hic et nunc",
			Stats: preview.Stats{FloorPrice: &floor},
		},
		Price:       &preview.Price{Amount: decimal.NewFromInt(5), Currency: preview.Currency, Symbol: preview.CurrencySymbol},
		SaleType:    preview.SaleListing,
		Edition:     &preview.Edition{Current: 3, Total: 10},
		Marketplace: preview.MarketplaceRef{Name: "OBJKT", URL: "https://objkt.com/asset/hicetnunc/42"},
		Attributes:  []preview.Attribute{{Name: "palette", Value: "warm"}},
	}
}

func TestRenderNFT(t *testing.T) {
	e := RenderNFT(listedNFT(), func(handle string) string {
		if handle == "artist" {
			return "1234567890"
		}
		return ""
	})
	require.True(t, Validate(e))
	assert.Equal(t, "Glass", e.Title)
	assert.Equal(t, "https://objkt.com/asset/hicetnunc/42", e.URL)
	assert.Equal(t, "https://ipfs.io/ipfs/QmDisplay", e.Image.URL)
	assert.Equal(t, "hic et nunc", e.Author.Name)
	assert.Equal(t, "OBJKT · Tezos", e.Footer.Text)

	v, ok := fieldValue(e, "Listed")
	require.True(t, ok)
	assert.Equal(t, "5 ꜩ", v)
	v, _ = fieldValue(e, "Available")
	assert.Equal(t, "3/10", v)
	v, _ = fieldValue(e, "Floor")
	assert.Equal(t, "1.23 ꜩ", v)
	v, _ = fieldValue(e, "Creator")
	assert.Contains(t, v, "[artist](https://objkt.com/profile/tz1UBZUkXpKGhYsP5KtzDNqLLchwF4uHrGjw)")
	assert.Contains(t, v, "<@1234567890>")
	v, _ = fieldValue(e, "palette")
	assert.Equal(t, "warm", v)
}

func TestRenderNFTOpenEdition(t *testing.T) {
	end := time.Unix(1714521600, 0)
	nft := &preview.NFT{
		Name:        "Open",
		SaleType:    preview.SaleOpenEdition,
		Price:       &preview.Price{Amount: decimal.RequireFromString("2.5"), Symbol: preview.CurrencySymbol},
		OpenEdition: &preview.OpenEditionInfo{Minted: new(int64), EndTime: &end},
		Marketplace: preview.MarketplaceRef{Name: "fxhash", URL: "https://www.fxhash.xyz/gentk/1"},
	}
	e := RenderNFT(nft, nil)
	require.True(t, Validate(e))
	v, _ := fieldValue(e, "Open edition")
	assert.Equal(t, "2.5 ꜩ", v)
	v, _ = fieldValue(e, "Ends")
	assert.Equal(t, "<t:1714521600:R>", v)
	_, ok := fieldValue(e, "Editions")
	assert.False(t, ok)
	assert.Nil(t, e.Image)
}

func TestRenderNFTManyAttributes(t *testing.T) {
	nft := listedNFT()
	for i := 0; i < 40; i++ {
		nft.Attributes = append(nft.Attributes, preview.Attribute{Name: fmt.Sprintf("trait %d", i), Value: strings.Repeat("x", 300)})
	}
	nft.Description = strings.Repeat("d", 5000)
	e := RenderNFT(nft, nil)
	assert.True(t, Validate(e))
	assert.LessOrEqual(t, len(e.Fields), MaxFields)
	assert.LessOrEqual(t, total(e), MaxTotal)
}

func TestRenderCollection(t *testing.T) {
	floor := decimal.RequireFromString("0.1")
	owners := int64(90000)
	c := &preview.Collection{
		Contract: "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton",
		Name:     "hic et nunc",
		Logo:     "https://ipfs.io/ipfs/QmLogo",
		Type:     "open_edition",
		Stats:    preview.Stats{FloorPrice: &floor, Owners: &owners},
		Socials:  preview.Socials{Twitter: "https://twitter.com/hicetnunc2000"},
		VerifiedCreators: []string{
			"tz1a", "tz1b", "tz1c", "tz1d", "tz1e", "tz1f", "tz1g",
		},
		Marketplace: preview.MarketplaceRef{Name: "OBJKT", URL: "https://objkt.com/collection/hicetnunc"},
	}
	e := RenderCollection(c)
	require.True(t, Validate(e))
	assert.Equal(t, "hic et nunc", e.Title)
	assert.Equal(t, "https://ipfs.io/ipfs/QmLogo", e.Thumbnail.URL)
	v, _ := fieldValue(e, "Floor")
	assert.Equal(t, "0.1 ꜩ", v)
	v, _ = fieldValue(e, "Owners")
	assert.Equal(t, "90000", v)
	v, _ = fieldValue(e, "Type")
	assert.Equal(t, "open edition", v)
	v, _ = fieldValue(e, "Creators")
	assert.Contains(t, v, "and 2 more")
	v, _ = fieldValue(e, "Links")
	assert.Equal(t, "[Twitter](https://twitter.com/hicetnunc2000)", v)
	v, _ = fieldValue(e, "Contract")
	assert.Contains(t, v, "https://tzkt.io/KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton")
}

func TestRenderErrorAndLoading(t *testing.T) {
	e := RenderError("Could not fetch these links.", "https://objkt.com/objkt/1: not found")
	require.True(t, Validate(e))
	assert.Equal(t, ColorError, e.Color)
	v, _ := fieldValue(e, "Details")
	assert.Equal(t, "https://objkt.com/objkt/1: not found", v)

	assert.Empty(t, RenderError("nothing").Fields)
	assert.True(t, Validate(RenderLoading()))
}

func TestValidate(t *testing.T) {
	ok := &discordgo.MessageEmbed{Title: "t", Fields: []*discordgo.MessageEmbedField{{Name: "n", Value: "v"}}}
	assert.True(t, Validate(ok))

	tests := []*discordgo.MessageEmbed{
		nil,
		{},
		{Title: strings.Repeat("t", MaxTitle+1)},
		{Title: "t", Description: strings.Repeat("d", MaxDescription+1)},
		{Title: "t", Footer: &discordgo.MessageEmbedFooter{Text: strings.Repeat("f", MaxFooter+1)}},
		{Title: "t", Fields: []*discordgo.MessageEmbedField{{Name: "", Value: "v"}}},
		{Title: "t", Fields: []*discordgo.MessageEmbedField{{Name: "n", Value: strings.Repeat("v", MaxFieldValue+1)}}},
		{Title: "t", Fields: make([]*discordgo.MessageEmbedField, MaxFields+1)},
		{
			Title:       "t",
			Description: strings.Repeat("d", MaxDescription),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "a", Value: strings.Repeat("v", MaxFieldValue)},
				{Name: "b", Value: strings.Repeat("v", MaxFieldValue)},
			},
		},
	}
	for i, tt := range tests {
		assert.False(t, Validate(tt), "case %d", i)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "ꜩꜩ…", truncate("ꜩꜩꜩꜩ", 3))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestText(t *testing.T) {
	e := RenderNFT(listedNFT(), func(string) string { return "99" })
	text := Text(e)
	assert.True(t, strings.HasPrefix(text, "hic et nunc\nGlass\n"))
	assert.Contains(t, text, "Listed: 5 ꜩ")
	assert.Contains(t, text, "Creator: artist")
	assert.NotContains(t, text, "<@99>")
	assert.NotContains(t, text, "](")
	assert.True(t, strings.HasSuffix(text, "https://objkt.com/asset/hicetnunc/42"))

	oe := &discordgo.MessageEmbed{Title: "t", Fields: []*discordgo.MessageEmbedField{{Name: "Ends", Value: "<t:0:R>"}}}
	assert.Contains(t, Text(oe), "Ends: 01 Jan 70 00:00 UTC")
}
