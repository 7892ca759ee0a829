package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
)

func newAssetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage the brand asset library (logos and photos)",
	}
	cmd.AddCommand(
		newAssetsListCmd(app),
		newAssetsAddCmd(app),
		newAssetsRemoveCmd(app),
	)
	return cmd
}

func newAssetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List uploaded assets with their sizes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.services().Assets.List(cmd.Context())
			if err := loaded(cmd, err); err != nil {
				return err
			}
			printLine(cmd, formatter.FormatAssets(a))
			return nil
		},
	}
}

func newAssetsAddCmd(app *App) *cobra.Command {
	var (
		assetType string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "add <image-file>",
		Short: "Upload an image (at most 5 MB)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseAssetType(assetType)
			if err != nil {
				return err
			}
			base, mimeType, data, err := readImage(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = base
			}

			a, err := app.services().Assets.Add(cmd.Context(), name, t, mimeType, data)
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Added %s %s, %s (%s)\n", a.Type, a.Name, formatter.Bytes(int64(len(data))), formatter.Dim(a.ID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&assetType, "type", string(domain.AssetLogo), "Asset type: logo, image or other")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the file name)")
	return cmd
}

func newAssetsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an asset",
		Long:    "Remove an asset. Org chart roles that used it as a photo show no photo afterwards.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.services().Assets.Remove(cmd.Context(), args[0])
			if errors.Is(err, domain.ErrItemNotFound) {
				return notFound("asset", args[0])
			}
			ok, err := saved(cmd, err)
			if err != nil {
				return err
			}
			if ok {
				printf(cmd, "Removed asset %s\n", args[0])
			}
			return nil
		},
	}
}
