package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Save or restore the whole plan as one JSON file",
	}
	cmd.AddCommand(
		newBackupExportCmd(app),
		newBackupImportCmd(app),
	)
	return cmd
}

func newBackupExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dated backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := app.services().Backup.Export(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			path := filepath.Join(out, file.Name)
			if err := os.WriteFile(path, file.Data, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			printf(cmd, "%s %s (%s)\n", formatter.StyleGreen.Render("✔"), path, formatter.Bytes(int64(len(file.Data))))
			return nil
		},
	}

	addOutFlag(cmd.Flags(), &out, ".")
	return cmd
}

func newBackupImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a backup file",
		Long: `Restore a backup file. Every section present in the file replaces the
saved one; sections missing from the file are left alone. Nothing is
written if the file is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			if !yes && app.interactive() {
				if err := confirmForm("Replace the saved plan with this backup?", &yes).RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !yes {
					printLine(cmd, "Cancelled.")
					return nil
				}
			}

			keys, err := app.services().Backup.Import(cmd.Context(), data)
			ok, err := saved(cmd, err)
			if err != nil {
				return fmt.Errorf("restore failed, nothing was changed: %w", err)
			}
			if !ok {
				return nil
			}
			if len(keys) == 0 {
				printLine(cmd, "The backup holds no saved sections; nothing was changed.")
				return nil
			}
			printf(cmd, "Restored %d sections:\n", len(keys))
			for _, k := range keys {
				printf(cmd, "  %s %s\n", formatter.StyleGreen.Render("✔"), k)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}
