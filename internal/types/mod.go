package types

type ModHeader struct {
	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version,omitempty"`
}

// Mod is one loaded plugin: a named collection of records.
type Mod struct {
	ModKey  ModKey    `yaml:"mod_key"`
	Header  ModHeader `yaml:"header,omitempty"`
	Masters []ModKey  `yaml:"masters,omitempty"`
	Npcs    []*Npc    `yaml:"npcs,omitempty"`
	Records []Record  `yaml:"records,omitempty"`
}

// ModListing is one load order slot. Mod is nil when the plugin is listed
// but could not be loaded.
type ModListing struct {
	ModKey ModKey
	Mod    *Mod
	Reason string
}

// RecordContext is one element of an override chain.
type RecordContext struct {
	ModKey ModKey
	Record *Npc
}
