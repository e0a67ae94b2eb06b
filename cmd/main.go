package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"intent-chat/cmd/ask"
	"intent-chat/cmd/route"
	"intent-chat/cmd/showconfig"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "intent-chat",
		Usage: "Inspect and exercise the country and name chat bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"INTENT_CHAT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "route",
				Aliases:   []string{"r"},
				Usage:     "Show the intent and query term picked for a message, without calling any API",
				ArgsUsage: "<message>",
				Action:    route.Route,
			},
			{
				Name:      "ask",
				Aliases:   []string{"a"},
				Usage:     "Answer a message against the live country and nationality APIs",
				ArgsUsage: "<message>",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "override the upstream request timeout",
					},
				},
				Action: ask.Ask,
			},
			{
				Name:   "config",
				Usage:  "Print the effective configuration",
				Action: showconfig.Show,
			},
		},
	}
}
