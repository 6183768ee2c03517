package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"facegen-baseline/internal/app"
)

type validateOptions struct {
	LoadOrder loadOrderOptions
	Settings  settingsOptions
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check settings and resolve baseline plugins against the load order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	bindLoadOrderFlags(cmd, &opts.LoadOrder)
	bindSettingsFlags(cmd, &opts.Settings)
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	ctx = log.Logger.WithContext(ctx)
	settings, configVersion := resolveSettings(cmd, opts.Settings)
	service := newAppService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		DataDir:       resolveString(cmd, opts.LoadOrder.DataDir, "data_dir", "data-dir"),
		PluginsFile:   resolveString(cmd, opts.LoadOrder.PluginsFile, "plugins_file", "plugins-file"),
		PatchMod:      resolveString(cmd, opts.LoadOrder.PatchMod, "patch_mod", "patch-mod"),
		ConfigVersion: configVersion,
		Settings:      settings,
	})
	if err != nil {
		return err
	}
	printSection("Baseline plugins")
	for i, source := range result.Sources {
		printLabelValue(fmt.Sprintf("%d", i+1), source)
	}
	if len(result.Skipped) > 0 {
		printWarning("not found in load order: " + strings.Join(result.Skipped, ", "))
	}
	if len(result.Sources) == 0 {
		printWarning("no baseline plugin resolved")
		return nil
	}
	printSuccess("settings valid")
	return nil
}
