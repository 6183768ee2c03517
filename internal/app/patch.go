package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"facegen-baseline/internal/adapters"
	"facegen-baseline/internal/core"
	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

func (s Service) Patch(ctx context.Context, req PatchRequest) (PatchResult, error) {
	if len(req.Settings.BaselineMods) == 0 {
		return PatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("baseline mods list is empty")
	}
	if err := checkConfigVersion(req.ConfigVersion); err != nil {
		return PatchResult{}, err
	}
	output := strings.TrimSpace(req.Output)
	if output == "" {
		return PatchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch output path is required")
	}
	writer, err := patchWriter(req.Format, output)
	if err != nil {
		return PatchResult{}, err
	}
	patchMod := patchModKey(req.PatchMod)
	loadOrder, err := s.loadOrder(ctx, req.DataDir, req.PluginsFile, patchMod)
	if err != nil {
		return PatchResult{}, err
	}

	patch := adapters.NewPatchModAdapter(patchMod)
	patcher := core.NewPatcher(loadOrder, adapters.NewLinkCacheAdapter(loadOrder), patch)
	summary, err := patcher.Run(ctx, req.Settings)
	if err != nil {
		return PatchResult{}, err
	}
	if s.NewRunID != nil {
		summary.RunID = s.NewRunID()
	}

	mod := patch.Mod()
	if len(summary.ProcessedSources) > 0 {
		mod.Header.Description = fmt.Sprintf("baseline appearance from %s", strings.Join(summary.ProcessedSources, ", "))
	}
	if err := writer.WritePatch(ctx, mod); err != nil {
		return PatchResult{}, err
	}

	reportDir := strings.TrimSpace(req.ReportDir)
	if reportDir == "" {
		reportDir = filepath.Dir(output)
	}
	report := adapters.NewReportFileAdapter(reportDir)
	if err := report.WriteRunSummary(summary); err != nil {
		return PatchResult{}, err
	}
	if err := report.WriteOutcomes(summary.Outcomes); err != nil {
		return PatchResult{}, err
	}
	log.Ctx(ctx).Debug().Str("output", output).Str("report_dir", reportDir).Msg("patch written")
	return PatchResult{
		Summary:    summary,
		OutputPath: output,
		ReportDir:  reportDir,
	}, nil
}

func (s Service) loadOrder(ctx context.Context, dataDir string, pluginsFile string, patchMod types.ModKey) (ports.LoadOrderPort, error) {
	dataDir = strings.TrimSpace(dataDir)
	if dataDir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("data directory is required")
	}
	pluginsFile = strings.TrimSpace(pluginsFile)
	if pluginsFile == "" {
		pluginsFile = filepath.Join(dataDir, "plugins.txt")
	}
	if s.LoadOrderSource == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("service requires a load order source")
	}
	return s.LoadOrderSource.LoadLoadOrder(ctx, dataDir, pluginsFile, patchMod)
}

func patchModKey(value string) types.ModKey {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultPatchMod
	}
	return types.ModKey(trimmed)
}

func patchFormat(value string) (types.PatchFormat, error) {
	switch types.PatchFormat(strings.ToLower(strings.TrimSpace(value))) {
	case "", types.PatchFormatYAML:
		return types.PatchFormatYAML, nil
	case types.PatchFormatSQLite:
		return types.PatchFormatSQLite, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown patch format: %s", value))
	}
}

func patchWriter(format string, output string) (ports.PatchWriterPort, error) {
	parsed, err := patchFormat(format)
	if err != nil {
		return nil, err
	}
	if parsed == types.PatchFormatSQLite {
		return adapters.NewPatchSQLiteAdapter(output), nil
	}
	return adapters.NewPatchFileAdapter(output), nil
}

func patchReader(format string) (ports.PatchReaderPort, error) {
	parsed, err := patchFormat(format)
	if err != nil {
		return nil, err
	}
	if parsed == types.PatchFormatSQLite {
		return adapters.NewPatchSQLiteAdapter(""), nil
	}
	return adapters.NewPatchFileAdapter(""), nil
}
