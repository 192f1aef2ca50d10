package main

import "github.com/urfave/cli/v2"

var (
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "config.json",
		Usage:   "load configuration from `file`",
	}
	CompactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "print json on one line",
	}
)
