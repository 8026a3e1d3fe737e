package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/clients/tui"
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive keypad",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record a tape even when tape.enabled is off",
			},
		},
		Action: runTUI,
	}
}

func runTUI(ctx context.Context, cmd *cli.Command) error {
	// The keypad owns the terminal; logs go to a file.
	logFile, err := openTUILog(cmd.Bool("debug"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	configPath := cmd.String("config")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	km, err := keymap.LoadKeyMap(cfg.Keymap.File)
	if err != nil {
		return fmt.Errorf("load keymap: %w", err)
	}

	angle := cfg.Engine.Unit()
	sess := openSession(ctx, cfg, events.SourceTUI, cfg.Tape.Enabled || cmd.Bool("record"), angle)

	model := tui.NewMainModel(tui.Options{
		Bus:       sess.bus,
		SessionID: sess.id,
		Angle:     angle,
		KeyMap:    km,
		History:   cfg.TUI.History,
		Reloader:  config.NewReloader(configPath, config.DotenvPath(), cfg),
		Logger:    slog.Default(),
	})

	final, err := tui.Run(ctx, model, configPath, config.DotenvPath(), cfg.Keymap.File)
	sess.close(final.Steps(), final.Output())
	return err
}

func openTUILog(debug bool) (*os.File, error) {
	path := filepath.Join(config.DataPath(), "tui.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tui log: %w", err)
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f, nil
}
