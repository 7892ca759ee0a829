package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newCanvasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "View and edit the Business Model Canvas",
	}
	cmd.AddCommand(
		newCanvasShowCmd(app),
		newCanvasSetCmd(app),
		newCanvasEditCmd(app),
	)
	return cmd
}

func newCanvasShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every canvas block",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.services().Canvas.Get(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatCanvas(c))
			return nil
		},
	}
}

func blockKeys() string {
	keys := make([]string, len(domain.CanvasBlocks))
	for i, b := range domain.CanvasBlocks {
		keys[i] = b.Key
	}
	return strings.Join(keys, ", ")
}

func newCanvasSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <block> <text>",
		Short: "Replace the text of one block",
		Long:  "Replace the text of one block. Blocks: " + blockKeys() + ".",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Canvas.SetBlock(cmd.Context(), args[0], args[1])
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Updated %s\n", args[0])
			}
			return nil
		},
	}
}

func newCanvasEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the canvas in a full-screen editor that saves as you type",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("canvas edit needs an interactive terminal; use: planforge canvas set <block> <text>")
			}
			c, err := app.services().Canvas.Get(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			m := newCanvasEditor(cmd.Context(), app, c)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			ed := final.(*canvasEditor)
			if err := ed.close(); err != nil {
				_, err = saved(cmd, err)
				return err
			}
			printLine(cmd, "Canvas saved.")
			return nil
		},
	}
}
