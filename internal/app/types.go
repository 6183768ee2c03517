package app

import "facegen-baseline/internal/types"

// DefaultPatchMod is the name of the produced plugin.
const DefaultPatchMod = "FacegenBaseline.esp"

type PatchRequest struct {
	DataDir       string
	PluginsFile   string
	Output        string
	Format        string
	PatchMod      string
	ReportDir     string
	ConfigVersion string
	Settings      types.Settings
}

type PatchResult struct {
	Summary    types.RunSummary
	OutputPath string
	ReportDir  string
}

type ValidateRequest struct {
	DataDir       string
	PluginsFile   string
	PatchMod      string
	ConfigVersion string
	Settings      types.Settings
}

type ValidateResult struct {
	Sources []string
	Skipped []string
}

type InspectRequest struct {
	ReportDir string
	PatchPath string
	Format    string
}

type InspectResult struct {
	Summary   types.RunSummary
	Outcomes  []types.RecordOutcome
	Overrides int
	Masters   []types.ModKey
}
