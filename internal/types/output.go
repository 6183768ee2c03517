package types

type RecordOutcome struct {
	FormKey        FormKey
	EditorID       string
	Name           string
	Source         ModKey
	Winner         ModKey
	Classification Classification
}

type RunSummary struct {
	RunID            string
	PatchMod         ModKey
	NpcRecords       int
	AlreadyWins      int
	UseBaseline      int
	HasBetterFacegen int
	Excluded         int
	ProcessedSources []string
	SkippedSources   []string
	Outcomes         []RecordOutcome
}
