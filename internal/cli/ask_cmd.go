package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/llm"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<message>"`,
		Short: "Ask the assistant one question about your canvas",
		Long: `Ask the assistant one question. The current Business Model Canvas is
sent along so the answer can build on what you have filled in.

The provider comes from "planforge settings ai". The local provider
downloads its model on first use.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			session, err := newAssistantSession(cmd, app)
			if err != nil {
				return err
			}

			stop := func() {}
			var spin *formatter.Spinner
			if app.interactive() {
				spin, stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Thinking...")
			}
			conv := app.NewConversation(session.ai, pullProgress(spin))
			reply, err := conv.Send(ctx, strings.Join(args, " "), &session.canvas)
			stop()

			if err != nil {
				printLine(cmd, formatter.ChatError(reply))
				return fmt.Errorf("assistant request failed: %w", err)
			}
			printLine(cmd, formatter.RenderMarkdown(reply, 80, session.markdownStyle(app)))
			return nil
		},
	}
}

// assistantSession is the saved state an assistant exchange needs.
type assistantSession struct {
	ai     domain.AISettings
	canvas domain.Canvas
	theme  domain.Theme
}

func newAssistantSession(cmd *cobra.Command, app *App) (*assistantSession, error) {
	if app.NewConversation == nil {
		return nil, fmt.Errorf("the assistant is not configured")
	}
	ctx := cmd.Context()
	s := &assistantSession{}
	var err error
	if s.ai, err = app.services().Settings.AI(ctx); loaded(cmd, err) != nil {
		return nil, err
	}
	if s.canvas, err = app.services().Canvas.Get(ctx); loaded(cmd, err) != nil {
		return nil, err
	}
	if s.theme, err = app.services().Settings.Theme(ctx); loaded(cmd, err) != nil {
		return nil, err
	}
	return s, nil
}

func (s *assistantSession) markdownStyle(app *App) string {
	return formatter.MarkdownStyle(app.interactive(), s.theme == domain.ThemeDark)
}

// pullProgress reports local model downloads on the spinner line.
func pullProgress(spin *formatter.Spinner) llm.ProgressFunc {
	if spin == nil {
		return nil
	}
	return func(pct float64, status string) {
		spin.SetMessage(fmt.Sprintf("Preparing local model: %s %3.0f%%", status, pct))
	}
}
