package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Assistant provider, theme and storage",
	}
	cmd.AddCommand(
		newSettingsShowCmd(app),
		newSettingsAICmd(app),
		newSettingsThemeCmd(app),
	)
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings and storage use",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v := formatter.SettingsView{}
			var err error
			if v.AI, err = app.services().Settings.AI(ctx); loaded(cmd, err) != nil {
				return err
			}
			if v.Theme, err = app.services().Settings.Theme(ctx); loaded(cmd, err) != nil {
				return err
			}
			if app.Store != nil {
				if v.UsageBytes, err = app.Store.Usage(ctx); err != nil {
					return fmt.Errorf("reading storage use: %w", err)
				}
			}
			if app.Config != nil {
				v.QuotaBytes = app.Config.QuotaBytes
				v.DBPath = app.Config.DBPath
			}
			printLine(cmd, formatter.FormatSettings(v))
			return nil
		},
	}
}

func newSettingsAICmd(app *App) *cobra.Command {
	var provider, apiKey, model, endpoint string

	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Choose the assistant provider",
		Long: `Choose the assistant provider: local (a model served by Ollama, no key),
groq or openai (both need an API key). Without flags on a terminal a
form is shown. --endpoint changes the local server address in the config
file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.services().Settings.AI(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}

			f := cmd.Flags()
			switch {
			case f.NFlag() == 0 && app.interactive():
				if err := aiSettingsForm(&s).RunWithContext(ctx); err != nil {
					return err
				}
			case f.NFlag() == 0:
				return fmt.Errorf("nothing to change; pass --provider, --api-key, --model or --endpoint")
			}

			if f.Changed("provider") {
				p, err := domain.ParseProvider(provider)
				if err != nil {
					return err
				}
				if p != s.Provider {
					s.Model = ""
				}
				s.Provider = p
			}
			if f.Changed("api-key") {
				s.APIKey = apiKey
			}
			if f.Changed("model") {
				s.Model = model
			}
			if f.Changed("endpoint") {
				if err := saveEndpoint(app, endpoint); err != nil {
					return err
				}
			}

			ok, err := saved(cmd, app.services().Settings.SaveAI(ctx, s))
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Assistant provider: %s\n", s.Provider)
				if s.Provider.Remote() && s.APIKey == "" {
					warnf(cmd, "%s needs an API key: planforge settings ai --api-key <key>", s.Provider)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "local, groq or openai")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key for groq or openai")
	cmd.Flags().StringVar(&model, "model", "", "Model name (blank for the provider default)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Local model server URL")
	return cmd
}

func saveEndpoint(app *App, endpoint string) error {
	if app.Config == nil || app.ConfigPath == "" {
		return fmt.Errorf("no config file to write the endpoint to")
	}
	app.Config.LLM.Endpoint = endpoint
	return app.Config.Save(app.ConfigPath)
}

func newSettingsThemeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "theme <light|dark>",
		Short:     "Set the export and preview theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.ThemeLight), string(domain.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseTheme(args[0])
			if err != nil {
				return err
			}
			ok, err := saved(cmd, app.services().Settings.SetTheme(cmd.Context(), t))
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Theme: %s\n", t)
			}
			return nil
		},
	}
}
