package types

type Classification string

const (
	ClassificationAlreadyWinning   Classification = "already-winning"
	ClassificationUseBaseline      Classification = "use-baseline"
	ClassificationHasBetterFacegen Classification = "has-better-facegen"

	ClassificationExcluded         Classification = "excluded"
	ClassificationAlreadyProcessed Classification = "already-processed"
	ClassificationNotInSource      Classification = "not-in-source"
)

// Counted reports whether the classification contributes to the summary
// counters and marks the record as processed.
func (c Classification) Counted() bool {
	switch c {
	case ClassificationAlreadyWinning, ClassificationUseBaseline, ClassificationHasBetterFacegen:
		return true
	default:
		return false
	}
}

type PatchFormat string

const (
	PatchFormatYAML   PatchFormat = "yaml"
	PatchFormatSQLite PatchFormat = "sqlite"
)
