package bot

import (
	"context"
	"errors"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/xyths/hs"
	"github.com/xyths/tezos-preview/card"
	"github.com/xyths/tezos-preview/preview"
	"github.com/xyths/tezos-preview/tracing"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const failureMessage = "Could not load a preview for these links, please try again later."

// Previewer is what the chat transports need from the preview package.
type Previewer interface {
	ProcessMessage(ctx context.Context, text string) ([]*preview.NFT, error)
	ProcessCollections(ctx context.Context, text string) ([]*preview.Collection, error)
}

// Bot holds what the Discord and Telegram transports share.
type Bot struct {
	cfg Config

	Sugar *zap.SugaredLogger
	db    *mongo.Database
	tp    *sdktrace.TracerProvider

	prefs     *Preferences
	previewer Previewer
}

func New(cfg Config) *Bot {
	return &Bot{cfg: cfg}
}

func (b *Bot) Init(ctx context.Context) error {
	l, err := hs.NewZapLogger(b.cfg.Log)
	if err != nil {
		return err
	}
	b.Sugar = l.Sugar()
	b.Sugar.Info("logger initialized")

	b.tp, err = tracing.Init(ctx, b.cfg.Tracing)
	if err != nil {
		b.Sugar.Errorf("init tracing error: %s", err)
		return err
	}

	if b.cfg.Mongo != nil {
		db, err := hs.ConnectMongo(ctx, *b.cfg.Mongo)
		if err != nil {
			b.Sugar.Errorf("connect mongo error: %s", err)
			return err
		}
		b.db = db
		b.Sugar.Info("database initialized")
	}
	b.prefs = NewPreferences(b.db, b.Sugar)

	p, err := preview.New(b.cfg.Preview, b.Sugar)
	if err != nil {
		b.Sugar.Errorf("init previewer error: %s", err)
		return err
	}
	b.previewer = p
	b.Sugar.Info("Bot initialized")
	return nil
}

func (b *Bot) Close(ctx context.Context) {
	if b.db != nil {
		if err := b.db.Client().Disconnect(ctx); err != nil {
			b.Sugar.Errorf("db close error: %s", err)
		}
	}
	if b.tp != nil {
		if err := b.tp.Shutdown(ctx); err != nil {
			b.Sugar.Errorf("tracing shutdown error: %s", err)
		}
	}
	b.Sugar.Info("Bot closed")
}

// hasLinks is the cheap local check done before anything is sent to the chat.
func hasLinks(text string, opts Options) bool {
	if enabled(opts, OptionNFT) && len(preview.DetectNFTLinks(text)) > 0 {
		return true
	}
	return enabled(opts, OptionCollection) && len(preview.DetectCollectionLinks(text)) > 0
}

// cards previews text. It returns preview.ErrNoLinksFound when there is
// nothing to show; when every link failed it returns a single error card
// together with the failure.
func cards(ctx context.Context, p Previewer, sugar *zap.SugaredLogger, text string, opts Options, mention card.MentionResolver) ([]*discordgo.MessageEmbed, error) {
	var embeds []*discordgo.MessageEmbed
	var failures []error
	attempted := false

	if enabled(opts, OptionNFT) {
		nfts, err := p.ProcessMessage(ctx, text)
		switch {
		case err == nil:
			attempted = true
			for _, nft := range nfts {
				embeds = append(embeds, card.RenderNFT(nft, mention))
			}
		case !errors.Is(err, preview.ErrNoLinksFound):
			attempted = true
			failures = append(failures, err)
		}
	}
	if enabled(opts, OptionCollection) {
		collections, err := p.ProcessCollections(ctx, text)
		switch {
		case err == nil:
			attempted = true
			for _, c := range collections {
				embeds = append(embeds, card.RenderCollection(c))
			}
		case !errors.Is(err, preview.ErrNoLinksFound):
			attempted = true
			failures = append(failures, err)
		}
	}
	if !attempted {
		return nil, preview.ErrNoLinksFound
	}

	valid := embeds[:0]
	for _, e := range embeds {
		if !card.Validate(e) {
			sugar.Errorf("drop card %q: %s", e.Title, preview.ErrValidation)
			failures = append(failures, fmt.Errorf("%s: %w", e.URL, preview.ErrValidation))
			continue
		}
		valid = append(valid, e)
	}
	if len(valid) > 0 {
		return valid, nil
	}
	return []*discordgo.MessageEmbed{card.RenderError(failureMessage, details(failures)...)}, errors.Join(failures...)
}

// details lists one line per failed link.
func details(failures []error) []string {
	var lines []string
	for _, err := range failures {
		var agg *preview.AggregateError
		if errors.As(err, &agg) {
			for _, f := range agg.Failures {
				lines = append(lines, fmt.Sprintf("%s: %s", f.URL, reason(f.Err)))
			}
			continue
		}
		lines = append(lines, reason(err))
	}
	return lines
}

func reason(err error) string {
	switch {
	case errors.Is(err, preview.ErrNotFound):
		return "not found"
	case errors.Is(err, preview.ErrRateLimited):
		return "too many requests, try again in a moment"
	case errors.Is(err, preview.ErrHTTP):
		return "indexer returned an error"
	case errors.Is(err, preview.ErrTransport):
		return "indexer unreachable"
	case errors.Is(err, preview.ErrValidation):
		return "preview could not be displayed"
	}
	return "unexpected error"
}
