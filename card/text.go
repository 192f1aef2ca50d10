package card

import (
	"github.com/bwmarrin/discordgo"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	markdownLink = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mentionTag   = regexp.MustCompile(`\s*<@!?\d+>`)
	timestamp    = regexp.MustCompile(`<t:(\d+):[tTdDfFR]>`)
)

func plain(s string) string {
	s = markdownLink.ReplaceAllString(s, "$1")
	s = mentionTag.ReplaceAllString(s, "")
	return timestamp.ReplaceAllStringFunc(s, func(m string) string {
		sec, err := strconv.ParseInt(timestamp.FindStringSubmatch(m)[1], 10, 64)
		if err != nil {
			return m
		}
		return time.Unix(sec, 0).UTC().Format(time.RFC822)
	})
}

// Text flattens a card for transports without rich embeds.
func Text(e *discordgo.MessageEmbed) string {
	var lines []string
	if e.Author != nil && e.Author.Name != "" {
		lines = append(lines, e.Author.Name)
	}
	if e.Title != "" {
		lines = append(lines, e.Title)
	}
	if e.Description != "" {
		lines = append(lines, plain(e.Description))
	}
	if len(e.Fields) > 0 {
		lines = append(lines, "")
		for _, f := range e.Fields {
			lines = append(lines, f.Name+": "+strings.ReplaceAll(plain(f.Value), "\n", ", "))
		}
	}
	if e.URL != "" {
		lines = append(lines, "", e.URL)
	}
	return strings.Join(lines, "\n")
}
