package ports

import "facegen-baseline/internal/types"

type ReportPort interface {
	WriteRunSummary(summary types.RunSummary) error
	WriteOutcomes(outcomes []types.RecordOutcome) error
}

type ReportReaderPort interface {
	ReadRunSummary(path string) (types.RunSummary, error)
	ReadOutcomes(path string) ([]types.RecordOutcome, error)
}
