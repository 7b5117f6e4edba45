package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/elee1766/drover/src/executor"
	"github.com/elee1766/drover/src/storage"
	"github.com/elee1766/drover/src/theme"
)

// RunsCmd lists recorded runs from the transcript database.
type RunsCmd struct {
	Limit int    `short:"n" default:"20" help:"Maximum number of runs to show"`
	Show  string `help:"Show the full transcript for a run ID"`
}

func (c *RunsCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}

	dbPath := databasePath(cfg)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no transcript database at %s", dbPath)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open transcript database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if c.Show != "" {
		return c.showTranscript(ctx, db)
	}

	runs, err := storage.ListRuns(ctx, db.DB(), c.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tSTEPS\tMODEL\tSTARTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			shortID(run.ID),
			styleStatus(run.Status),
			run.StepsTaken,
			run.Model,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func (c *RunsCmd) showTranscript(ctx context.Context, db *storage.DB) error {
	run, err := storage.GetRunByID(ctx, db.DB(), c.Show)
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %s not found", c.Show)
	}

	fmt.Printf("run %s  %s  %s\n\n", run.ID, styleStatus(run.Status), theme.MutedStyle.Render(run.Model))

	messages, err := storage.GetMessagesByRunID(ctx, db.DB(), run.ID)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}
	for _, msg := range messages {
		label := msg.Role
		if msg.Name != "" {
			label = fmt.Sprintf("%s(%s)", msg.Role, msg.Name)
		}
		fmt.Printf("[%d] %s: %s\n", msg.StepNumber, theme.ToolNameStyle.Render(label), msg.Content)
	}

	if run.Status == string(executor.StatusToolError) && run.Detail != "" {
		fmt.Printf("\n%s %s\n", theme.ErrorStyle.Render("detail:"), run.Detail)
	}
	return nil
}

func styleStatus(status string) string {
	switch executor.RunStatus(status) {
	case executor.StatusCompleted:
		return theme.SuccessStyle.Render(status)
	case executor.StatusLimitExceeded, executor.StatusTimedOut, executor.StatusCancelled:
		return theme.WarningStyle.Render(status)
	case executor.StatusToolError:
		return theme.ErrorStyle.Render(status)
	default:
		// Runs still marked "running" were interrupted, not failed.
		return theme.MutedStyle.Render(status)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
