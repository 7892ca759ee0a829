package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newDeckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Edit the twelve-slide pitch deck",
	}
	cmd.AddCommand(
		newDeckShowCmd(app),
		newDeckSetCmd(app),
		newDeckResetCmd(app),
		newDeckLogoCmd(app),
	)
	return cmd
}

func newDeckShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every slide",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			slides, err := app.services().Deck.Slides(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			logo, err := app.services().Deck.Logo(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatDeck(slides, logo != ""))
			return nil
		},
	}
}

func newDeckSetCmd(app *App) *cobra.Command {
	var title, content string

	cmd := &cobra.Command{
		Use:   "set <slide>",
		Short: "Change the title or content of a slide",
		Long: `Change the title or content of a slide (1-12). Only the flags given are
changed. Lines starting with "-" or "•" become bullet points.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseSlideNumber(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("content") {
				return fmt.Errorf("nothing to change; pass --title and/or --content")
			}

			ctx := cmd.Context()
			slides, err := app.services().Deck.Slides(ctx)
			if err := loaded(cmd, err); err != nil {
				return err
			}
			if n < 1 || n > len(slides) {
				return &domain.ValidationError{Field: "slide", Message: fmt.Sprintf("slide %d out of range 1-%d", n, len(slides))}
			}
			s := slides[n-1]
			if cmd.Flags().Changed("title") {
				s.Title = title
			}
			if cmd.Flags().Changed("content") {
				s.Content = content
			}

			_, err = app.services().Deck.SetSlide(ctx, n, s)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Updated slide %d: %s\n", n, s.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Slide title")
	cmd.Flags().StringVar(&content, "content", "", "Slide body text")
	return cmd
}

func newDeckResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the twelve template slides",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && app.interactive() {
				if err := confirmForm("Discard every slide and start from the template?", &yes).RunWithContext(cmd.Context()); err != nil {
					return err
				}
				if !yes {
					printLine(cmd, "Cancelled.")
					return nil
				}
			} else if !yes {
				return fmt.Errorf("deck reset discards every slide; pass --yes to confirm")
			}

			_, err := app.services().Deck.Reset(cmd.Context())
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printLine(cmd, "Deck reset to the template.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation")
	return cmd
}

func newDeckLogoCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "logo [asset-id | image-file]",
		Short: "Set or clear the logo shown on the title slide",
		Long: `Set the deck logo from a brand library asset id or an image file on disk.
Use --clear to remove it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deck := app.services().Deck

			if clear {
				if len(args) > 0 {
					return fmt.Errorf("--clear takes no argument")
				}
				ok, err := saved(cmd, deck.ClearLogo(ctx))
				if err != nil {
					return err
				}
				if ok {
					printLine(cmd, "Logo removed.")
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("give an asset id or image file, or --clear")
			}

			dataURL, source, err := resolveLogoArg(cmd, app, args[0])
			if err != nil {
				return err
			}
			ok, err := saved(cmd, deck.SetLogo(ctx, dataURL))
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Logo set from %s.\n", source)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the logo")
	return cmd
}

// resolveLogoArg looks the argument up in the brand library first and
// falls back to reading it as an image file.
func resolveLogoArg(cmd *cobra.Command, a *App, arg string) (dataURL, source string, err error) {
	assets, err := a.services().Assets.List(cmd.Context())
	if err := loaded(cmd, err); err != nil {
		return "", "", err
	}
	if u, ok := app.ResolveLogo(assets, arg); ok {
		return u, "asset " + arg, nil
	}

	if _, statErr := os.Stat(arg); errors.Is(statErr, os.ErrNotExist) {
		return "", "", fmt.Errorf("%q is neither a brand asset id nor an image file (see: planforge assets list)", arg)
	}
	name, mimeType, data, err := readImage(arg)
	if err != nil {
		return "", "", err
	}
	asset, err := domain.NewBrandAsset(name, domain.AssetLogo, mimeType, data)
	if err != nil {
		return "", "", err
	}
	return asset.DataURL, name, nil
}
