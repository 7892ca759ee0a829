package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/domain"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk through your business model with the assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf(`chat needs an interactive terminal; use: planforge ask "<message>"`)
			}
			session, err := newAssistantSession(cmd, app)
			if err != nil {
				return err
			}

			var prog *tea.Program
			conv := app.NewConversation(session.ai, func(pct float64, status string) {
				if prog != nil {
					prog.Send(pullProgressMsg{pct: pct, status: status})
				}
			})

			// Each turn sends the canvas as saved at that moment, so edits made
			// in another terminal are picked up.
			loadCanvas := func(ctx context.Context) domain.Canvas {
				c, err := app.services().Canvas.Get(ctx)
				if err != nil {
					return session.canvas
				}
				return c
			}

			m := newChatModel(cmd.Context(), conv, loadCanvas, session.markdownStyle(app))
			prog = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return err
			}
			return nil
		},
	}
}
