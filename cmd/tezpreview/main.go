package main

import (
	"context"
	"fmt"
	"github.com/urfave/cli/v2"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

// newApp wires the commands. Chat transports live under `bot`, the other
// commands are one-shot and print JSON.
func newApp() *cli.App {
	return &cli.App{
		Name:    "tezpreview",
		Usage:   "Tezos NFT link preview bot",
		Version: version,
		Flags:   []cli.Flag{ConfigFlag},
		Commands: []*cli.Command{
			botCommand,
			previewCommand,
			matchCommand,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "tezpreview: %s\n", err)
		stop()
		os.Exit(1)
	}
}
