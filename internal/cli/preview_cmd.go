package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/preview"
)

func newPreviewCmd(app *App) *cobra.Command {
	var addr string

	def := "127.0.0.1:8765"
	if app.Config != nil && app.Config.Preview.Addr != "" {
		def = app.Config.Preview.Addr
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the rendered plan in a browser",
		Long: `Serve every artifact as a web page, with export downloads and backup
and restore endpoints:

  GET  /                        index
  GET  /artifacts/{artifact}    rendered artifact
  GET  /export/{artifact}.{fmt} download (?mode=native for deck pptx)
  GET  /backup                  backup file
  POST /backup                  restore a backup file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printf(cmd, "Preview at %s  %s\n", formatter.Bold("http://"+addr), formatter.Dim("(Ctrl+C to stop)"))
			return preview.New(app.Workspace, app.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", def, "Listen address")
	return cmd
}
