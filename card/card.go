package card

import (
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/xyths/hs/convert"
	"github.com/xyths/tezos-preview/preview"
	"strings"
	"time"
)

const (
	ColorDefault = 0x2C7DF7
	ColorError   = 0xE74C3C
	ColorLoading = 0x95A5A6

	footerSuffix = "Tezos"

	maxCreators    = 5
	descriptionCut = 1024
)

var marketplaceColors = map[string]int{
	"OBJKT":      0x0C0C0C,
	"fxhash":     0xFF5F5F,
	"Teia":       0x2F3136,
	"Versum":     0x5A2EFF,
	"Bootloader": 0x00C853,
	"EditArt":    0xFFB300,
}

var saleLabels = map[preview.SaleType]string{
	preview.SaleOpenEdition:    "Open edition",
	preview.SaleListing:        "Listed",
	preview.SaleDutchAuction:   "Dutch auction",
	preview.SaleEnglishAuction: "English auction",
}

// MentionResolver maps a creator's discord handle to a user id, "" when the
// handle is unknown.
type MentionResolver func(handle string) string

func color(marketplace string) int {
	if c, ok := marketplaceColors[marketplace]; ok {
		return c
	}
	return ColorDefault
}

func footer(marketplace string) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%s · %s", marketplace, footerSuffix)}
}

func tez(d decimal.Decimal) string {
	return fmt.Sprintf("%s %s", d.String(), preview.CurrencySymbol)
}

func roundTez(d *decimal.Decimal) string {
	return tez(d.Round(2))
}

// short abbreviates tezos addresses, anything too short to abbreviate is kept.
func short(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return convert.ShortAddress(addr)
}

func creatorLine(c preview.Creator, mention MentionResolver) string {
	name := c.Alias
	if name == "" {
		name = short(c.Address)
	}
	if c.Address != "" {
		name = fmt.Sprintf("[%s](https://objkt.com/profile/%s)", name, c.Address)
	}
	if c.Discord != "" && mention != nil {
		if id := mention(c.Discord); id != "" {
			name += fmt.Sprintf(" <@%s>", id)
		}
	}
	return name
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

// RenderNFT builds the card of one token.
func RenderNFT(nft *preview.NFT, mention MentionResolver) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       nft.Name,
		URL:         nft.Marketplace.URL,
		Description: truncate(nft.Description, descriptionCut),
		Color:       color(nft.Marketplace.Name),
		Footer:      footer(nft.Marketplace.Name),
	}
	if nft.ImageURL != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: nft.ImageURL}
	}
	if nft.Collection != nil && nft.Collection.Name != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: nft.Collection.Name}
	}

	if nft.Creator.Address != "" || nft.Creator.Alias != "" {
		e.Fields = append(e.Fields, field("Creator", creatorLine(nft.Creator, mention), true))
	}
	if nft.Price != nil {
		label := saleLabels[nft.SaleType]
		e.Fields = append(e.Fields, field(label, tez(nft.Price.Amount), true))
	}
	switch {
	case nft.OpenEdition != nil:
		oe := nft.OpenEdition
		if oe.Minted != nil {
			e.Fields = append(e.Fields, field("Minted", fmt.Sprintf("%d", *oe.Minted), true))
		}
		if oe.MaxPerWallet != nil {
			e.Fields = append(e.Fields, field("Max per wallet", fmt.Sprintf("%d", *oe.MaxPerWallet), true))
		}
		if oe.EndTime != nil {
			e.Fields = append(e.Fields, field("Ends", relative(*oe.EndTime), true))
		}
	case nft.Edition != nil:
		name := "Editions"
		if nft.SaleType == preview.SaleListing {
			name = "Available"
		}
		e.Fields = append(e.Fields, field(name, fmt.Sprintf("%d/%d", nft.Edition.Current, nft.Edition.Total), true))
	}
	if nft.Collection != nil && nft.Collection.Stats.FloorPrice != nil {
		e.Fields = append(e.Fields, field("Floor", roundTez(nft.Collection.Stats.FloorPrice), true))
	}
	if nft.Media != nil && nft.Media.MimeType != "" {
		e.Fields = append(e.Fields, field("Format", nft.Media.MimeType, true))
	}
	for _, a := range nft.Attributes {
		if len(e.Fields) >= MaxFields {
			break
		}
		if a.Value == "" {
			continue
		}
		e.Fields = append(e.Fields, field(a.Name, a.Value, true))
	}
	return fit(e)
}

// RenderCollection builds the card of a collection or generative project.
func RenderCollection(c *preview.Collection) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       c.Name,
		URL:         c.Marketplace.URL,
		Description: truncate(c.Description, descriptionCut),
		Color:       color(c.Marketplace.Name),
		Footer:      footer(c.Marketplace.Name),
	}
	if c.Logo != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Logo}
	}

	s := c.Stats
	if s.FloorPrice != nil {
		e.Fields = append(e.Fields, field("Floor", roundTez(s.FloorPrice), true))
	}
	if s.Volume24h != nil {
		e.Fields = append(e.Fields, field("Volume 24h", roundTez(s.Volume24h), true))
	}
	if s.VolumeTotal != nil {
		e.Fields = append(e.Fields, field("Total volume", roundTez(s.VolumeTotal), true))
	}
	if s.Items != nil {
		e.Fields = append(e.Fields, field("Items", fmt.Sprintf("%d", *s.Items), true))
	}
	if s.Editions != nil {
		e.Fields = append(e.Fields, field("Editions", fmt.Sprintf("%d", *s.Editions), true))
	}
	if s.Owners != nil {
		e.Fields = append(e.Fields, field("Owners", fmt.Sprintf("%d", *s.Owners), true))
	}
	if c.Type != "" {
		e.Fields = append(e.Fields, field("Type", strings.ReplaceAll(c.Type, "_", " "), true))
	}
	e.Fields = append(e.Fields, field("Contract", fmt.Sprintf("[%s](https://tzkt.io/%s)", short(c.Contract), c.Contract), true))

	if len(c.VerifiedCreators) > 0 {
		creators := c.VerifiedCreators
		more := 0
		if len(creators) > maxCreators {
			more = len(creators) - maxCreators
			creators = creators[:maxCreators]
		}
		lines := make([]string, 0, len(creators)+1)
		for _, addr := range creators {
			lines = append(lines, creatorLine(preview.Creator{Address: addr}, nil))
		}
		if more > 0 {
			lines = append(lines, fmt.Sprintf("and %d more", more))
		}
		e.Fields = append(e.Fields, field("Creators", strings.Join(lines, "\n"), false))
	}

	var socials []string
	if c.Socials.Website != "" {
		socials = append(socials, fmt.Sprintf("[Website](%s)", c.Socials.Website))
	}
	if c.Socials.Twitter != "" {
		socials = append(socials, fmt.Sprintf("[Twitter](%s)", c.Socials.Twitter))
	}
	if c.Socials.Discord != "" {
		socials = append(socials, fmt.Sprintf("[Discord](%s)", c.Socials.Discord))
	}
	if len(socials) > 0 {
		e.Fields = append(e.Fields, field("Links", strings.Join(socials, " · "), false))
	}
	return fit(e)
}

// RenderError is the generic failure card, details are listed one per line.
func RenderError(msg string, details ...string) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       "Preview unavailable",
		Description: msg,
		Color:       ColorError,
	}
	if len(details) > 0 {
		e.Fields = append(e.Fields, field("Details", strings.Join(details, "\n"), false))
	}
	return fit(e)
}

// RenderLoading is the placeholder sent while upstreams are queried.
func RenderLoading() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Fetching preview…",
		Description: "Looking this up on the Tezos indexers.",
		Color:       ColorLoading,
	}
}

func relative(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
