package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gosuri/uilive"
	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/sessions"
	"github.com/dohr-michael/scicalc/internal/storage"
)

// ErrDrift is returned when a replayed tape no longer matches its recording.
var ErrDrift = errors.New("tape drifted")

// NewReplayCommand returns the replay subcommand.
func NewReplayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Re-run a recorded tape and report steps whose display changed",
		ArgsUsage: "<tape.jsonl | session_id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Print the display after every replayed key",
			},
			&cli.BoolFlag{
				Name:  "live",
				Usage: "Redraw a single display line as the tape plays back",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Pause between keys in --live mode",
				Value: 150 * time.Millisecond,
			},
		},
		Action: runReplay,
	}
}

func runReplay(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	arg := cmd.Args().First()
	if arg == "" {
		return fmt.Errorf("usage: scicalc replay <tape.jsonl | session_id>")
	}

	path := arg
	if _, err := os.Stat(arg); err != nil {
		cfg, cfgErr := loadConfig(cmd)
		if cfgErr != nil {
			return cfgErr
		}
		path = sessions.NewFileStore(cfg.Tape.Dir).TapePath(arg)
	}

	tape, err := storage.ReadTape(path)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	var opts []calc.Option
	switch {
	case cmd.Bool("live"):
		live := uilive.New()
		live.Out = w
		delay := cmd.Duration("delay")
		opts = append(opts, calc.WithObserver(func(s calc.Step) {
			writeStep(live, s)
			_ = live.Flush()
			if delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
			}
		}))
	case cmd.Bool("trace"):
		opts = append(opts, calc.WithObserver(func(s calc.Step) { writeStep(w, s) }))
	}

	res, err := storage.Replay(tape, opts...)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("replay interrupted: %w", err)
	}

	for _, d := range res.Drifts {
		fmt.Fprintln(w, d)
	}
	writeOutput(w, res.Final)
	if len(res.Drifts) > 0 {
		return fmt.Errorf("%w: %d of %d steps", ErrDrift, len(res.Drifts), res.Steps)
	}
	fmt.Fprintf(w, "replayed %d steps, no drift\n", res.Steps)
	return nil
}
