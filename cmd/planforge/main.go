package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/cli"
	"github.com/alexanderramin/planforge/internal/config"
	"github.com/alexanderramin/planforge/internal/db"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/export"
	"github.com/alexanderramin/planforge/internal/intelligence"
	"github.com/alexanderramin/planforge/internal/llm"
	"github.com/alexanderramin/planforge/internal/repository"
	"github.com/alexanderramin/planforge/internal/service"
	"github.com/alexanderramin/planforge/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := newLogger(cfg.Log.Level)
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.Level != "" {
		observer = service.NewLogUseCaseObserver(logger)
	}

	store := repository.NewSQLiteKVRepo(database, cfg.QuotaBytes)
	svc := app.NewServices(store, db.NewSQLiteUnitOfWork(database), cfg.QuotaBytes, observer)

	renderer, err := view.NewRenderer()
	if err != nil {
		return fmt.Errorf("loading views: %w", err)
	}
	rasterizer := export.NewRodRasterizer(export.RodConfig{Bin: cfg.Export.ChromeBin, Logger: logger})
	defer rasterizer.Close()
	exporter := export.NewExporter(rasterizer,
		export.WithScale(cfg.Export.Scale),
		export.WithViewportWidth(cfg.Export.ViewportWidth),
	)

	llmCfg := cfg.LLMSettings()
	var llmObserver llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		llmObserver = llm.NewLogObserver(os.Stderr)
	}

	a := &cli.App{
		Workspace:  app.NewWorkspace(svc, renderer, exporter),
		Store:      store,
		Config:     cfg,
		ConfigPath: cfgPath,
		NewConversation: func(s domain.AISettings, progress llm.ProgressFunc) *intelligence.Conversation {
			return intelligence.NewSettingsConversation(s, llmCfg, llmObserver, progress)
		},
		Logger: logger,
		Now:    time.Now,
	}

	// Forms and full-screen views are only offered on a real terminal.
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(context.Background())
}

// newLogger writes use-case events to stderr at the configured level. An
// empty level discards everything below errors.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
