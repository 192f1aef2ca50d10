package main

import (
	"encoding/json"
	"errors"
	"github.com/urfave/cli/v2"
	"github.com/xyths/hs"
	"github.com/xyths/tezos-preview/bot"
	"github.com/xyths/tezos-preview/preview"
	"go.uber.org/zap"
	"io/fs"
	"os"
	"strings"
)

var (
	botCommand = &cli.Command{
		Name:  "bot",
		Usage: "Start a chat bot that previews marketplace links",
		Subcommands: []*cli.Command{
			{
				Action: discordBot,
				Name:   "discord",
				Usage:  "Start a discord bot",
			},
			{
				Action:  telegramBot,
				Name:    "telegram",
				Aliases: []string{"tg"},
				Usage:   "Start a telegram bot",
			},
		},
	}
	previewCommand = &cli.Command{
		Name:  "preview",
		Usage: "Preview the links of a message once",
		Subcommands: []*cli.Command{
			{
				Action:    previewNFT,
				Name:      "nft",
				Usage:     "Print the tokens linked in the message",
				ArgsUsage: "<message>",
				Flags:     []cli.Flag{CompactFlag},
			},
			{
				Action:    previewCollection,
				Name:      "collection",
				Usage:     "Print the collections linked in the message",
				ArgsUsage: "<message>",
				Flags:     []cli.Flag{CompactFlag},
			},
		},
	}
	matchCommand = &cli.Command{
		Action:    match,
		Name:      "match",
		Usage:     "Print the marketplace links found in the message, without any request",
		ArgsUsage: "<message>",
		Flags:     []cli.Flag{CompactFlag},
	}
)

func startBot(c *cli.Context, run func(b *bot.Bot) error) error {
	cfg, err := bot.LoadConfig(c.String(ConfigFlag.Name))
	if err != nil {
		return err
	}
	b := bot.New(cfg)
	if err := b.Init(c.Context); err != nil {
		return err
	}
	defer b.Close(c.Context)
	return run(b)
}

func discordBot(c *cli.Context) error {
	return startBot(c, func(b *bot.Bot) error {
		return b.RunDiscord(c.Context)
	})
}

func telegramBot(c *cli.Context) error {
	return startBot(c, func(b *bot.Bot) error {
		return b.RunTelegram(c.Context)
	})
}

// previewer works without a config file, defaults are used then.
func previewer(c *cli.Context) (*preview.Previewer, error) {
	file := c.String(ConfigFlag.Name)
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		return preview.New(preview.Config{}, zap.NewNop().Sugar())
	}
	cfg, err := bot.LoadConfig(file)
	if err != nil {
		return nil, err
	}
	l, err := hs.NewZapLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	return preview.New(cfg.Preview, l.Sugar())
}

func message(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", errors.New("message is empty")
	}
	return strings.Join(c.Args().Slice(), " "), nil
}

func printJSON(c *cli.Context, v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	if !c.Bool(CompactFlag.Name) {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func previewNFT(c *cli.Context) error {
	text, err := message(c)
	if err != nil {
		return err
	}
	p, err := previewer(c)
	if err != nil {
		return err
	}
	nfts, err := p.ProcessMessage(c.Context, text)
	if err != nil {
		return err
	}
	return printJSON(c, nfts)
}

func previewCollection(c *cli.Context) error {
	text, err := message(c)
	if err != nil {
		return err
	}
	p, err := previewer(c)
	if err != nil {
		return err
	}
	collections, err := p.ProcessCollections(c.Context, text)
	if err != nil {
		return err
	}
	return printJSON(c, collections)
}

func match(c *cli.Context) error {
	text, err := message(c)
	if err != nil {
		return err
	}
	return printJSON(c, struct {
		NFTs        []preview.NFTLink        `json:"nfts"`
		Collections []preview.CollectionLink `json:"collections"`
	}{
		NFTs:        preview.DetectNFTLinks(text),
		Collections: preview.DetectCollectionLinks(text),
	})
}
