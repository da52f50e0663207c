package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songtable/internal/shared"
	"github.com/desertthunder/songtable/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive song table against a running server.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	client := r.songClient()
	if _, err := client.Health(ctx); err != nil {
		r.logger.Warn("server not reachable, starting anyway", "url", r.config.Client.BaseURL, "error", err)
	}

	model := ui.NewModel(ctx, client, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
