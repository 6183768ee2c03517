package adapters

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

const (
	RunSummaryFile  = "run.summary"
	RunOutcomesFile = "run.outcomes"
)

// ReportFileAdapter writes the audit trail of a run next to the patch.
type ReportFileAdapter struct {
	Dir string
}

func NewReportFileAdapter(dir string) ReportFileAdapter {
	return ReportFileAdapter{Dir: dir}
}

func (a ReportFileAdapter) WriteRunSummary(summary types.RunSummary) error {
	path, err := a.ensurePath(RunSummaryFile)
	if err != nil {
		return err
	}
	content := fmt.Sprintf(
		"run_id=%s\npatch_mod=%s\nnpc_records=%d\nalready_wins=%d\nuse_baseline=%d\nhas_better_facegen=%d\nexcluded=%d\nprocessed_sources=%s\nskipped_sources=%s\n",
		summary.RunID,
		summary.PatchMod,
		summary.NpcRecords,
		summary.AlreadyWins,
		summary.UseBaseline,
		summary.HasBetterFacegen,
		summary.Excluded,
		strings.Join(summary.ProcessedSources, ","),
		strings.Join(summary.SkippedSources, ","),
	)
	return writeReportFile(path, []byte(content))
}

func (a ReportFileAdapter) WriteOutcomes(outcomes []types.RecordOutcome) error {
	path, err := a.ensurePath(RunOutcomesFile)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, outcome := range outcomes {
		if err := writer.Write([]string{
			outcome.FormKey.String(),
			outcome.EditorID,
			outcome.Name,
			string(outcome.Source),
			string(outcome.Winner),
			string(outcome.Classification),
		}); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode outcomes").
				WithCause(err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode outcomes").
			WithCause(err)
	}
	return writeReportFile(path, buf.Bytes())
}

func writeReportFile(path string, content []byte) error {
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", filepath.Base(path))).
			WithCause(err)
	}
	return nil
}

func (a ReportFileAdapter) ReadRunSummary(path string) (types.RunSummary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.RunSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("run.summary not found").
			WithCause(err)
	}
	summary := types.RunSummary{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return types.RunSummary{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid run.summary format")
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "run_id":
			summary.RunID = value
		case "patch_mod":
			summary.PatchMod = types.ModKey(value)
		case "npc_records":
			summary.NpcRecords, err = parseCount(key, value)
		case "already_wins":
			summary.AlreadyWins, err = parseCount(key, value)
		case "use_baseline":
			summary.UseBaseline, err = parseCount(key, value)
		case "has_better_facegen":
			summary.HasBetterFacegen, err = parseCount(key, value)
		case "excluded":
			summary.Excluded, err = parseCount(key, value)
		case "processed_sources":
			summary.ProcessedSources = splitList(value)
		case "skipped_sources":
			summary.SkippedSources = splitList(value)
		}
		if err != nil {
			return types.RunSummary{}, err
		}
	}
	return summary, nil
}

func (a ReportFileAdapter) ReadOutcomes(path string) ([]types.RecordOutcome, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("run.outcomes not found").
			WithCause(err)
	}
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = 6
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid run.outcomes format").
			WithCause(err)
	}
	outcomes := make([]types.RecordOutcome, 0, len(rows))
	for _, row := range rows {
		formKey, err := types.ParseFormKey(row[0])
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, types.RecordOutcome{
			FormKey:        formKey,
			EditorID:       row[1],
			Name:           row[2],
			Source:         types.ModKey(row[3]),
			Winner:         types.ModKey(row[4]),
			Classification: types.Classification(row[5]),
		})
	}
	return outcomes, nil
}

func (a ReportFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("report directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create report directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func parseCount(key string, value string) (int, error) {
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid %s value in run.summary", key)).
			WithCause(err)
	}
	return count, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) != "" {
			out = append(out, strings.TrimSpace(item))
		}
	}
	return out
}

var _ ports.ReportPort = ReportFileAdapter{}
var _ ports.ReportReaderPort = ReportFileAdapter{}
