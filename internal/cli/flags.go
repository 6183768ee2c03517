package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"facegen-baseline/internal/types"
)

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}

// settingsOptions are the patcher settings shared by patch and validate.
type settingsOptions struct {
	BaselineMods     []string
	ExcludeEditorIDs []string
	GetProtectedFlag bool
	ConfigVersion    string
}

func bindSettingsFlags(cmd *cobra.Command, opts *settingsOptions) {
	cmd.Flags().StringSliceVar(&opts.BaselineMods, "baseline-mod", nil, "Baseline plugin names (last listed wins)")
	cmd.Flags().StringSliceVar(&opts.ExcludeEditorIDs, "exclude-editor-id", nil, "Skip NPCs whose editor ID contains any keyword")
	cmd.Flags().BoolVar(&opts.GetProtectedFlag, "get-protected-flag", true, "Forward the protected flag from baseline records")
	cmd.Flags().StringVar(&opts.ConfigVersion, "config-version", "", "Settings version (optional)")

	_ = viper.BindPFlag("baseline_mods", cmd.Flags().Lookup("baseline-mod"))
	_ = viper.BindPFlag("exclude_npc_editor_id", cmd.Flags().Lookup("exclude-editor-id"))
	_ = viper.BindPFlag("get_protected_flag", cmd.Flags().Lookup("get-protected-flag"))
	_ = viper.BindPFlag("config_version", cmd.Flags().Lookup("config-version"))
}

func resolveSettings(cmd *cobra.Command, opts settingsOptions) (types.Settings, string) {
	settings := types.DefaultSettings()
	settings.BaselineMods = resolveStrings(cmd, opts.BaselineMods, "baseline_mods", "baseline-mod")
	settings.ExcludeNPCEditorID = resolveStrings(cmd, opts.ExcludeEditorIDs, "exclude_npc_editor_id", "exclude-editor-id")
	settings.GetProtectedFlag = resolveBool(cmd, opts.GetProtectedFlag, "get_protected_flag", "get-protected-flag")
	return settings, resolveString(cmd, opts.ConfigVersion, "config_version", "config-version")
}

// loadOrderOptions locate the load order shared by patch and validate.
type loadOrderOptions struct {
	DataDir     string
	PluginsFile string
	PatchMod    string
}

func bindLoadOrderFlags(cmd *cobra.Command, opts *loadOrderOptions) {
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", "", "Directory holding plugin files")
	cmd.Flags().StringVar(&opts.PluginsFile, "plugins-file", "", "plugins.txt path (defaults to <data-dir>/plugins.txt)")
	cmd.Flags().StringVar(&opts.PatchMod, "patch-mod", "FacegenBaseline.esp", "Name of the produced plugin")

	_ = viper.BindPFlag("data_dir", cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag("plugins_file", cmd.Flags().Lookup("plugins-file"))
	_ = viper.BindPFlag("patch_mod", cmd.Flags().Lookup("patch-mod"))
}
