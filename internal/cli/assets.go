package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thefortaiagency/bendavis/internal/app"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/usecase"
)

var errAssetsFailed = errors.New("some assets failed to generate")

func newAssetsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Generate the site's images",
	}

	generate := &cobra.Command{
		Use:   "generate [asset...]",
		Short: "Generate and store images; all stored assets when none are named",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := parseAssetNames(args)
			if err != nil {
				return err
			}

			a, err := app.New(cmd.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			failed := false
			for _, result := range a.Images.GenerateAll(cmd.Context(), names) {
				if result.Err != nil {
					failed = true
					fmt.Fprintf(cmd.OutOrStdout(), "%s: failed: %v\n", result.Asset, result.Err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", result.Asset, result.Path)
			}
			if failed {
				return errAssetsFailed
			}
			return nil
		},
	}

	cmd.AddCommand(generate)
	return cmd
}

func parseAssetNames(args []string) ([]model.ImageAssetName, error) {
	if len(args) == 0 {
		return usecase.StoredImageAssets(), nil
	}
	names := make([]model.ImageAssetName, 0, len(args))
	for _, arg := range args {
		name := model.ImageAssetName(arg)
		asset, ok := usecase.LookupImageAsset(name)
		if !ok || asset.FileName == "" {
			return nil, fmt.Errorf("%w: %s (stored assets: %v)", usecase.ErrUnknownImageAsset, arg, usecase.StoredImageAssets())
		}
		names = append(names, name)
	}
	return names, nil
}
