package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/dohr-michael/scicalc/internal/events"
	"github.com/dohr-michael/scicalc/internal/sessions"
)

// NewSessionsCommand returns the sessions subcommand.
func NewSessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "sessions",
		Usage: "Inspect recorded calculator sessions",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all recorded sessions",
				Action: runSessionsList,
			},
			{
				Name:      "show",
				Usage:     "Show the key presses of a session",
				ArgsUsage: "<session_id>",
				Action:    runSessionsShow,
			},
		},
		DefaultCommand: "list",
	}
}

func newStore(cmd *cli.Command) (*sessions.FileStore, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return sessions.NewFileStore(cfg.Tape.Dir), nil
}

func runSessionsList(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	store, err := newStore(cmd)
	if err != nil {
		return err
	}

	list, err := store.List()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	w := cmd.Root().Writer
	if len(list) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCLIENT\tSTATUS\tKEYS\tERRORS\tUPDATED\tDISPLAY")
	for _, s := range list {
		display := s.Display
		if display == "" {
			display = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			s.ID,
			s.Client,
			s.Status,
			s.Steps,
			s.Errors,
			s.UpdatedAt.Format("2006-01-02 15:04"),
			display,
		)
	}
	return tw.Flush()
}

func runSessionsShow(_ context.Context, cmd *cli.Command) error {
	setupLogging(cmd)
	sessionID := cmd.Args().First()
	if sessionID == "" {
		return fmt.Errorf("usage: scicalc sessions show <session_id>")
	}

	store, err := newStore(cmd)
	if err != nil {
		return err
	}
	if _, err := store.Get(sessionID); err != nil {
		return err
	}

	tape, err := store.LoadTape(sessionID)
	if err != nil {
		return fmt.Errorf("load tape: %w", err)
	}

	w := cmd.Root().Writer
	shown := 0
	for _, e := range tape {
		p, ok := events.GetCalcActionPayload(e)
		if !ok {
			continue
		}
		line := fmt.Sprintf("[%s] %-6s %s", e.Timestamp.Format("15:04:05"), p.Token, p.Display)
		if p.Memory != "" {
			line += "  [" + p.Memory + "]"
		}
		fmt.Fprintln(w, line)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(w, "No key presses in this session.")
	}
	return nil
}
