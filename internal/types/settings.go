package types

// Settings drives one patcher run.
type Settings struct {
	BaselineMods       []string `yaml:"baseline_mods"`
	ExcludeNPCEditorID []string `yaml:"exclude_npc_editor_id"`
	GetProtectedFlag   bool     `yaml:"get_protected_flag"`
}

func DefaultSettings() Settings {
	return Settings{GetProtectedFlag: true}
}
