package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/internal/keymap"
)

// NewKeysCommand returns the keys subcommand.
func NewKeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Print the effective key map as YAML",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "layout",
				Usage: "Print the keypad layout instead",
			},
		},
		Action: runKeys,
	}
}

func runKeys(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	w := cmd.Root().Writer

	if cmd.Bool("layout") {
		for _, row := range keymap.Layout {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	km, err := keymap.LoadKeyMap(cfg.Keymap.File)
	if err != nil {
		return fmt.Errorf("load keymap: %w", err)
	}

	data, err := km.Marshal()
	if err != nil {
		return fmt.Errorf("marshal keymap: %w", err)
	}
	_, err = w.Write(data)
	return err
}
