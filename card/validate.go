package card

import (
	"github.com/bwmarrin/discordgo"
	"unicode/utf8"
)

// Discord embed limits, in characters.
const (
	MaxTitle       = 256
	MaxDescription = 4096
	MaxFields      = 25
	MaxFieldName   = 256
	MaxFieldValue  = 1024
	MaxFooter      = 2048
	MaxAuthor      = 256
	MaxTotal       = 6000
)

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if length(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// total is what Discord counts against MaxTotal.
func total(e *discordgo.MessageEmbed) int {
	n := length(e.Title) + length(e.Description)
	if e.Footer != nil {
		n += length(e.Footer.Text)
	}
	if e.Author != nil {
		n += length(e.Author.Name)
	}
	for _, f := range e.Fields {
		n += length(f.Name) + length(f.Value)
	}
	return n
}

// fit trims an embed into the limits: long texts are cut, empty fields dropped,
// trailing fields dropped while the total is too large.
func fit(e *discordgo.MessageEmbed) *discordgo.MessageEmbed {
	e.Title = truncate(e.Title, MaxTitle)
	e.Description = truncate(e.Description, MaxDescription)
	if e.Footer != nil {
		e.Footer.Text = truncate(e.Footer.Text, MaxFooter)
	}
	if e.Author != nil {
		e.Author.Name = truncate(e.Author.Name, MaxAuthor)
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f == nil || f.Name == "" || f.Value == "" {
			continue
		}
		if len(fields) == MaxFields {
			break
		}
		f.Name = truncate(f.Name, MaxFieldName)
		f.Value = truncate(f.Value, MaxFieldValue)
		fields = append(fields, f)
	}
	e.Fields = fields

	for total(e) > MaxTotal && len(e.Fields) > 0 {
		e.Fields = e.Fields[:len(e.Fields)-1]
	}
	if over := total(e) - MaxTotal; over > 0 {
		e.Description = truncate(e.Description, length(e.Description)-over)
	}
	return e
}

// Validate reports whether Discord would accept the embed.
func Validate(e *discordgo.MessageEmbed) bool {
	if e == nil {
		return false
	}
	if e.Title == "" && e.Description == "" {
		return false
	}
	if length(e.Title) > MaxTitle || length(e.Description) > MaxDescription {
		return false
	}
	if e.Footer != nil && length(e.Footer.Text) > MaxFooter {
		return false
	}
	if e.Author != nil && length(e.Author.Name) > MaxAuthor {
		return false
	}
	if len(e.Fields) > MaxFields {
		return false
	}
	for _, f := range e.Fields {
		if f == nil || f.Name == "" || f.Value == "" {
			return false
		}
		if length(f.Name) > MaxFieldName || length(f.Value) > MaxFieldValue {
			return false
		}
	}
	return total(e) <= MaxTotal
}
