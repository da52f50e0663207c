package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/songtable/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Logger:     logger,
		ConfigPath: "config.toml",
	})

	app := &cli.Command{
		Name:     "songtable",
		Usage:    "Upload, browse and export a CSV song list",
		Version:  "0.1.0",
		Flags:    rootFlags(),
		Before:   runner.configure,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, errAborted) {
			logger.Warn("aborted")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
