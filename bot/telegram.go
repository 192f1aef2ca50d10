package bot

import (
	"context"
	"errors"
	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/xyths/tezos-preview/card"
	"github.com/xyths/tezos-preview/preview"
	"strconv"
)

const (
	telegramPollTimeout = 60
	telegramMaxText     = 4096
)

// RunTelegram long-polls Telegram until ctx is done.
func (b *Bot) RunTelegram(ctx context.Context) error {
	if b.cfg.Telegram.Token == "" {
		return errors.New("telegram token is empty")
	}
	api, err := tgbotapi.NewBotAPI(b.cfg.Telegram.Token)
	if err != nil {
		b.Sugar.Errorf("New Telegram bot error: %s", err)
		return err
	}
	b.Sugar.Infof("Telegram bot %s initialized", api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = telegramPollTimeout
	updates, err := api.GetUpdatesChan(u)
	if err != nil {
		b.Sugar.Errorf("get telegram updates error: %s", err)
		return err
	}
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			go b.onTelegramMessage(ctx, api, update.Message)
		}
	}
}

func (b *Bot) onTelegramMessage(ctx context.Context, api *tgbotapi.BotAPI, msg *tgbotapi.Message) {
	if msg.From != nil && msg.From.IsBot {
		return
	}
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	chatID := msg.Chat.ID
	opts := b.prefs.Options(ctx, b.cfg.Telegram.Bot, strconv.FormatInt(chatID, 10))
	if !hasLinks(text, opts) {
		return
	}

	loading := tgbotapi.NewMessage(chatID, telegramText(card.RenderLoading()))
	loading.ReplyToMessageID = msg.MessageID
	sent, err := api.Send(loading)
	if err != nil {
		b.Sugar.Errorf("send loading message error: %s", err)
		return
	}

	embeds, err := cards(ctx, b.previewer, b.Sugar, text, opts, nil)
	if errors.Is(err, preview.ErrNoLinksFound) {
		if _, err := api.DeleteMessage(tgbotapi.DeleteMessageConfig{ChatID: chatID, MessageID: sent.MessageID}); err != nil {
			b.Sugar.Errorf("delete loading message error: %s", err)
		}
		return
	}
	if err != nil {
		b.Sugar.Errorf("preview message %d error: %s", msg.MessageID, err)
	}

	edit := tgbotapi.NewEditMessageText(chatID, sent.MessageID, telegramText(embeds[0]))
	if _, err := api.Send(edit); err != nil {
		b.Sugar.Errorf("edit loading message error: %s", err)
	}
	for _, e := range embeds[1:] {
		reply := tgbotapi.NewMessage(chatID, telegramText(e))
		reply.ReplyToMessageID = msg.MessageID
		if _, err := api.Send(reply); err != nil {
			b.Sugar.Errorf("send message error: %s", err)
		}
	}
}

// telegramText flattens a card within the Telegram message limit.
func telegramText(e *discordgo.MessageEmbed) string {
	r := []rune(card.Text(e))
	if len(r) <= telegramMaxText {
		return string(r)
	}
	return string(r[:telegramMaxText-1]) + "…"
}
