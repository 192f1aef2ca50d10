package bot

import (
	"context"
	"errors"
	"github.com/bwmarrin/discordgo"
	"github.com/xyths/tezos-preview/card"
	"github.com/xyths/tezos-preview/preview"
	"strings"
)

// RunDiscord serves Discord until ctx is done.
func (b *Bot) RunDiscord(ctx context.Context) error {
	if b.cfg.Discord.Token == "" {
		return errors.New("discord token is empty")
	}
	s, err := discordgo.New("Bot " + b.cfg.Discord.Token)
	if err != nil {
		b.Sugar.Errorf("discord bot init error: %s", err)
		return err
	}
	// GuildMembers is privileged, it must be switched on in the developer portal.
	// Without it mentions fall back to a member search per handle.
	s.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent
	s.State.TrackMembers = true
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.Sugar.Infof("discord bot %s is ready", r.User.Username)
	})
	s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.onDiscordMessage(ctx, s, m)
	})
	if err = s.Open(); err != nil {
		b.Sugar.Errorf("discord open error: %s", err)
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			b.Sugar.Errorf("discord close error: %s", err)
		}
	}()

	<-ctx.Done()
	return nil
}

func (b *Bot) onDiscordMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	var self string
	if s.State.User != nil {
		self = s.State.User.Username
	}
	opts := b.prefs.Options(ctx, self, m.ChannelID)
	if !hasLinks(m.Content, opts) {
		return
	}

	loading, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:    []*discordgo.MessageEmbed{card.RenderLoading()},
		Reference: m.Reference(),
	})
	if err != nil {
		b.Sugar.Errorf("send loading card error: %s", err)
		return
	}

	search := func(guildID, query string) ([]*discordgo.Member, error) {
		return s.GuildMembersSearch(guildID, query, 1)
	}
	embeds, err := cards(ctx, b.previewer, b.Sugar, m.Content, opts, guildMentions(s.State, search, m.GuildID))
	if errors.Is(err, preview.ErrNoLinksFound) {
		if err := s.ChannelMessageDelete(m.ChannelID, loading.ID); err != nil {
			b.Sugar.Errorf("delete loading card error: %s", err)
		}
		return
	}
	if err != nil {
		b.Sugar.Errorf("preview message %s error: %s", m.ID, err)
	}

	if _, err := s.ChannelMessageEditEmbed(m.ChannelID, loading.ID, embeds[0]); err != nil {
		b.Sugar.Errorf("edit loading card error: %s", err)
	}
	for _, e := range embeds[1:] {
		if _, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
			Embeds:    []*discordgo.MessageEmbed{e},
			Reference: m.Reference(),
		}); err != nil {
			b.Sugar.Errorf("send card error: %s", err)
		}
	}
}

// memberSearch asks Discord for the guild members matching query.
type memberSearch func(guildID, query string) ([]*discordgo.Member, error)

// guildMentions resolves creator handles against the cached members of the
// guild, then against a member search when the cache has no match.
func guildMentions(state *discordgo.State, search memberSearch, guildID string) card.MentionResolver {
	return func(handle string) string {
		if guildID == "" {
			return ""
		}
		if state != nil {
			if g, err := state.Guild(guildID); err == nil {
				state.RLock()
				id := memberID(g.Members, handle)
				state.RUnlock()
				if id != "" {
					return id
				}
			}
		}
		query := strings.TrimPrefix(strings.TrimSpace(handle), "@")
		if search == nil || query == "" {
			return ""
		}
		members, err := search(guildID, query)
		if err != nil {
			return ""
		}
		return memberID(members, handle)
	}
}

// memberID finds the member whose username, tag or nickname is handle.
func memberID(members []*discordgo.Member, handle string) string {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return ""
	}
	for _, m := range members {
		if m == nil || m.User == nil {
			continue
		}
		if strings.EqualFold(m.User.Username, handle) ||
			strings.EqualFold(m.User.String(), handle) ||
			(m.Nick != "" && strings.EqualFold(m.Nick, handle)) {
			return m.User.ID
		}
	}
	return ""
}
