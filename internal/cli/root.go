package cli

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/config"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/intelligence"
	"github.com/alexanderramin/planforge/internal/llm"
	"github.com/alexanderramin/planforge/internal/repository"
)

// ConversationFactory starts an assistant session for the saved settings.
// progress receives local model download updates and may be nil.
type ConversationFactory func(s domain.AISettings, progress llm.ProgressFunc) *intelligence.Conversation

// App holds everything the commands need.
type App struct {
	Workspace *app.Workspace
	Store     repository.KVStore
	Config    *config.Config
	// ConfigPath is where settings changes to the config file are written.
	ConfigPath string

	NewConversation ConversationFactory

	// IsInteractive reports whether stdin is a terminal; forms and TUIs are
	// only offered when it is.
	IsInteractive func() bool
	Logger        *slog.Logger
	Now           func() time.Time
}

func (a *App) services() app.Services { return a.Workspace.Services() }

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "planforge" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planforge",
		Short:         "Business planning workspace: canvas, pitch deck, roadmap and more",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCanvasCmd(a),
		newDeckCmd(a),
		newRoadmapCmd(a),
		newOrgCmd(a),
		newChecklistCmd(a),
		newForecastCmd(a),
		newSWOTCmd(a),
		newMarketCmd(a),
		newAssetsCmd(a),
		newExportCmd(a),
		newBackupCmd(a),
		newAskCmd(a),
		newChatCmd(a),
		newSettingsCmd(a),
		newPreviewCmd(a),
	)

	return root
}
