package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "scicalc",
		Usage: "Scientific calculator with a terminal keypad",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewEvalCommand(),
			NewReplayCommand(),
			NewKeysCommand(),
			NewSessionsCommand(),
		},
		DefaultCommand: "tui",
	}
}
