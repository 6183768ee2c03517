package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"facegen-baseline/internal/adapters"
)

func (s Service) Inspect(req InspectRequest) (InspectResult, error) {
	reportDir := strings.TrimSpace(req.ReportDir)
	if reportDir == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report directory is required")
	}
	report := adapters.NewReportFileAdapter(reportDir)
	summary, err := report.ReadRunSummary(filepath.Join(reportDir, adapters.RunSummaryFile))
	if err != nil {
		return InspectResult{}, err
	}
	outcomes, err := report.ReadOutcomes(filepath.Join(reportDir, adapters.RunOutcomesFile))
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{Summary: summary, Outcomes: outcomes}

	patchPath := strings.TrimSpace(req.PatchPath)
	if patchPath == "" {
		return result, nil
	}
	reader, err := patchReader(req.Format)
	if err != nil {
		return InspectResult{}, err
	}
	mod, err := reader.ReadPatch(patchPath)
	if err != nil {
		return InspectResult{}, err
	}
	result.Overrides = len(mod.Npcs)
	result.Masters = mod.Masters
	return result, nil
}
