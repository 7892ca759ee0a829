package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/service"
	"github.com/alexanderramin/planforge/internal/view"
)

func newExportCmd(a *App) *cobra.Command {
	var (
		format string
		mode   string
		out    string
		watch  bool
	)

	def := "."
	if a.Config != nil && a.Config.Export.Dir != "" {
		def = a.Config.Export.Dir
	}

	cmd := &cobra.Command{
		Use:   "export <artifact>",
		Short: "Export an artifact as PNG, PDF, PPTX or Markdown",
		Long: `Export an artifact to a file in the output directory.

Artifacts: canvas, deck, roadmap, org, checklist, forecast, swot, market.
Formats:   png, pdf, pptx, md.

Pitch deck PPTX exports default to one captured picture per slide; use
--mode native for editable text shapes. With --watch the export is
rewritten whenever the saved plan changes.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: artifactNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := view.ParseArtifact(args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			m, err := export.ParseDeckMode(mode)
			if err != nil {
				return err
			}
			req := app.ExportRequest{Artifact: artifact, Format: f, DeckMode: m}

			if err := runExport(cmd.Context(), cmd, a, req, out); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchExport(cmd.Context(), cmd, a, func(ctx context.Context) error {
				return runExport(ctx, cmd, a, req, out)
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatPNG), "Output format: png, pdf, pptx or md")
	cmd.Flags().StringVar(&mode, "mode", string(export.DeckRaster), "Pitch deck PPTX mode: raster or native")
	addOutFlag(cmd.Flags(), &out, def)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-export whenever the plan changes")
	return cmd
}

func artifactNames() []string {
	names := make([]string, len(view.Artifacts))
	for i, a := range view.Artifacts {
		names[i] = string(a)
	}
	return names
}

// runExport renders into memory first so a failed export never leaves a
// partial file behind.
func runExport(ctx context.Context, cmd *cobra.Command, a *App, req app.ExportRequest, dir string) error {
	stop := func() {}
	if a.interactive() {
		_, stop = formatter.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Exporting %s as %s...", req.Artifact.Title(), strings.ToUpper(string(req.Format))))
	}

	var buf bytes.Buffer
	res, err := a.Workspace.Export(ctx, &buf, req)
	stop()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	warnNotices(cmd, res.Notices)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, res.FileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	pages := ""
	if res.Pages > 1 {
		pages = fmt.Sprintf(", %d pages", res.Pages)
	}
	printf(cmd, "%s %s (%s%s)\n", formatter.StyleGreen.Render("✔"), path, formatter.Bytes(res.Bytes), pages)
	return nil
}

// watchExport re-runs fn after the database file has been quiet for the
// autosave delay. It returns when ctx is cancelled.
func watchExport(ctx context.Context, cmd *cobra.Command, a *App, fn func(context.Context) error) error {
	if a.Config == nil {
		return fmt.Errorf("--watch needs a database path")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	dbFile := filepath.Base(a.Config.DBPath)
	if err := w.Add(filepath.Dir(a.Config.DBPath)); err != nil {
		return fmt.Errorf("watching %s: %w", a.Config.DBPath, err)
	}

	rerun := service.NewDebouncer(a.Config.AutosaveDelay(),
		func(ctx context.Context, _ struct{}) error { return fn(ctx) },
		func(err error) { warnf(cmd, "%v", err) },
	)
	defer rerun.Close(context.Background())

	printLine(cmd, formatter.Dim("Watching for changes. Press Ctrl+C to stop."))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			// SQLite writes land in the main file or its -wal/-journal siblings.
			if !strings.HasPrefix(filepath.Base(event.Name), dbFile) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				rerun.Schedule(struct{}{})
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			warnf(cmd, "file watcher: %v", err)
		}
	}
}
