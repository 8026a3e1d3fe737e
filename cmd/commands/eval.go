package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/scicalc/internal/calc"
	"github.com/dohr-michael/scicalc/internal/config"
	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/keymap"
)

var errNoInput = errors.New("no tokens: pass them as arguments or pipe them on stdin")

// NewEvalCommand returns the eval subcommand.
func NewEvalCommand() *cli.Command {
	return &cli.Command{
		Name:      "eval",
		Usage:     "Press keys non-interactively and print the display",
		ArgsUsage: "[tokens...]",
		Description: "Tokens are keypad labels or their ASCII aliases, e.g. " +
			"`scicalc eval 2 + 3 =` or `scicalc eval '12*sqrt 9='`. Without " +
			"arguments, tokens are read from stdin line by line and the display " +
			"is printed after each line.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "angle",
				Usage: "Starting angle unit: deg or rad (default from config)",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Print the display after every key",
			},
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Record a tape even when tape.enabled is off",
			},
		},
		Action: runEval,
	}
}

func runEval(ctx context.Context, cmd *cli.Command) error {
	setupLogging(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	angle := cfg.Engine.Unit()
	if cmd.IsSet("angle") {
		if angle, err = config.ParseAngleUnit(cmd.String("angle")); err != nil {
			return fmt.Errorf("--angle: %w", err)
		}
	}

	w := cmd.Root().Writer
	var lines []string
	perLine := false
	switch {
	case cmd.Args().Len() > 0:
		lines = []string{strings.Join(cmd.Args().Slice(), " ")}
	case !isTerminal(cmd.Root().Reader):
		if lines, err = readLines(cmd.Root().Reader); err != nil {
			return err
		}
		perLine = true
	default:
		return errNoInput
	}

	sess := openSession(ctx, cfg, events.SourceCLI, cfg.Tape.Enabled || cmd.Bool("record"), angle)
	opts := []calc.Option{calc.WithAngleUnit(angle), calc.WithObserver(sess.observer())}
	if cmd.Bool("trace") {
		opts = append(opts, calc.WithObserver(func(s calc.Step) { writeStep(w, s) }))
	}
	engine := calc.NewEngine(opts...)

	defer func() { sess.close(engine.Steps(), engine.Output()) }()

	for i, line := range lines {
		if line == "" {
			continue
		}
		actions, err := keymap.ParseLine(line)
		if err != nil {
			if perLine {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			return err
		}
		for _, a := range actions {
			engine.Dispatch(a)
		}
		if perLine && len(actions) > 0 {
			writeOutput(w, engine.Output())
		}
	}
	if !perLine {
		writeOutput(w, engine.Output())
	}
	return nil
}

// isTerminal reports whether r is an interactive terminal. Anything that is
// not a file (a pipe in tests, a strings.Reader) counts as piped input.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		// Blank and comment lines are kept empty so errors keep their line numbers.
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			line = ""
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lines, nil
}
