package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facegen-baseline/internal/app"
)

type patchOptions struct {
	LoadOrder loadOrderOptions
	Settings  settingsOptions
	Output    string
	Format    string
	ReportDir string
}

func newPatchCommand() *cobra.Command {
	opts := patchOptions{}
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Forward baseline appearance and write the patch plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPatch(cmd.Context(), cmd, opts)
		},
	}
	bindLoadOrderFlags(cmd, &opts.LoadOrder)
	bindSettingsFlags(cmd, &opts.Settings)
	cmd.Flags().StringVar(&opts.Output, "output", "out/FacegenBaseline.esp.yaml", "Patch output path")
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Patch format (yaml|sqlite)")
	cmd.Flags().StringVar(&opts.ReportDir, "report-dir", "", "Run report directory (defaults to the output directory)")

	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("report_dir", cmd.Flags().Lookup("report-dir"))
	return cmd
}

func runPatch(ctx context.Context, cmd *cobra.Command, opts patchOptions) error {
	ctx = log.Logger.WithContext(ctx)
	settings, configVersion := resolveSettings(cmd, opts.Settings)
	service := newAppService()
	result, err := service.Patch(ctx, app.PatchRequest{
		DataDir:       resolveString(cmd, opts.LoadOrder.DataDir, "data_dir", "data-dir"),
		PluginsFile:   resolveString(cmd, opts.LoadOrder.PluginsFile, "plugins_file", "plugins-file"),
		PatchMod:      resolveString(cmd, opts.LoadOrder.PatchMod, "patch_mod", "patch-mod"),
		Output:        resolveString(cmd, opts.Output, "output", "output"),
		Format:        resolveString(cmd, opts.Format, "format", "format"),
		ReportDir:     resolveString(cmd, opts.ReportDir, "report_dir", "report-dir"),
		ConfigVersion: configVersion,
		Settings:      settings,
	})
	if err != nil {
		return err
	}
	printRunSummary(result.Summary)
	printSuccess("patch written: " + result.OutputPath)
	return nil
}
