package main

import (
	"bufio"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/songtable/internal/formatter"
	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/repositories"
	"github.com/desertthunder/songtable/internal/shared"
	"github.com/desertthunder/songtable/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SongsList fetches and prints songs from the server.
func (r *Runner) SongsList(ctx context.Context, cmd *cli.Command) error {
	order := string(models.ParseOrderKey(cmd.String("order")))

	r.logger.Debug("listing songs", "order", order)

	songs, err := r.songClient().ListSongs(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Songs (%d, by %s)", len(songs), order))
	if len(songs) == 0 {
		return r.writePlain("No songs yet. Upload a CSV with 'songtable songs upload <file>'.\n")
	}

	for i, s := range songs {
		if err := r.writePlain("%3d. %-30s %-30s %d\n", i+1, s.Band(), s.Name(), s.Year()); err != nil {
			return err
		}
	}
	return nil
}

// SongsUpload posts a CSV file to the server.
func (r *Runner) SongsUpload(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: CSV file path is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r.logger.Info("uploading songs", "file", path, "server", r.config.Client.BaseURL)

	res, err := r.songClient().UploadCSV(ctx, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	return r.writePlain("✓ Uploaded %d rows from %s\n", res.Total, path)
}

// SongsImport loads a CSV file straight into the configured database without a server.
func (r *Runner) SongsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: CSV file path is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	engine := tasks.NewLibraryEngine(repositories.NewSongRepository(db), r.logger)

	progressCh := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ParseFile:
				r.writePlain("📄 %s\n", update.Message)
			case tasks.SaveSongs:
				r.writePlain("💾 %s\n", update.Message)
			default:
				r.writePlain("%s\n", update.Message)
			}
		}
	}()

	res, err := engine.Import(ctx, data, contentTypeFor(path), progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	count, err := engine.Count(ctx)
	if err != nil {
		return err
	}
	return r.writePlain("%d songs stored in %s (%d rows read)\n", count, r.config.Database.Path, res.Total)
}

// SongsClear deletes every song on the server after confirmation.
func (r *Runner) SongsClear(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		r.writePlain("Delete all songs on %s? [y/N] ", r.config.Client.BaseURL)
		if !r.confirm() {
			return errAborted
		}
	}

	if err := r.songClient().ClearSongs(ctx); err != nil {
		return fmt.Errorf("failed to clear songs: %w", err)
	}

	r.logger.Info("cleared songs", "server", r.config.Client.BaseURL)
	return r.writePlain("✓ All songs deleted\n")
}

// SongsExport fetches songs from the server and writes them in the requested format.
func (r *Runner) SongsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	songs, err := r.songClient().ListSongs(ctx, string(models.ParseOrderKey(cmd.String("order"))))
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	path, err := formatter.WriteExport(songs, format, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("exported songs", "format", format, "path", path, "songs", len(songs))
	return r.writePlain("✓ Exported %d songs to %s\n", len(songs), path)
}

// Status reports server health and song count.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	status, err := r.songClient().Health(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, false)
	}
	return r.writePlain("Server %s: %s (%d songs)\n", r.config.Client.BaseURL, status.Status, status.Songs)
}

// confirm reads a y/yes answer from the runner's input.
func (r *Runner) confirm() bool {
	line, err := bufio.NewReader(r.input).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// contentTypeFor guesses the upload content type from a file extension; unknown extensions count as CSV.
func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "text/csv"
}
