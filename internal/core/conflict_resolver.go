package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"facegen-baseline/internal/policies"
	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// ProcessedKeys tracks the records already classified during one run.
type ProcessedKeys map[types.FormKey]struct{}

func (p ProcessedKeys) Contains(key types.FormKey) bool {
	_, ok := p[key.Normalized()]
	return ok
}

func (p ProcessedKeys) Add(key types.FormKey) {
	p[key.Normalized()] = struct{}{}
}

type Resolution struct {
	Classification types.Classification
	Winner         types.RecordContext
	Master         types.RecordContext
	// ExcludedBy is the keyword that excluded the candidate.
	ExcludedBy string
}

type ConflictResolver struct {
	Links     ports.LinkCachePort
	Exclusion policies.ExclusionPolicy
}

func NewConflictResolver(links ports.LinkCachePort, exclusion policies.ExclusionPolicy) ConflictResolver {
	return ConflictResolver{Links: links, Exclusion: exclusion}
}

// Evaluate filters and classifies one baseline candidate. Counted
// classifications add the candidate to processed.
func (r ConflictResolver) Evaluate(ctx context.Context, source types.ModKey, candidate *types.Npc, processed ProcessedKeys) (Resolution, error) {
	if candidate == nil {
		return Resolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("candidate record is nil")
	}
	if processed.Contains(candidate.FormKey) {
		return Resolution{Classification: types.ClassificationAlreadyProcessed}, nil
	}
	if keyword := r.Exclusion.Matching(candidate.EditorID); keyword != "" {
		return Resolution{Classification: types.ClassificationExcluded, ExcludedBy: keyword}, nil
	}
	resolution, err := r.Classify(ctx, source, candidate.FormKey)
	if err != nil {
		return Resolution{}, err
	}
	if resolution.Classification.Counted() {
		processed.Add(candidate.FormKey)
	}
	return resolution, nil
}

// Classify walks the override chain of key and decides whether the
// baseline supplied by source should replace the winner's appearance.
func (r ConflictResolver) Classify(ctx context.Context, source types.ModKey, key types.FormKey) (Resolution, error) {
	if r.Links == nil {
		return Resolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("conflict resolver requires a link cache")
	}
	chain, err := r.Links.ResolveChain(ctx, key)
	if err != nil {
		return Resolution{}, err
	}
	chain = dropEmptyContexts(chain)
	if !chainDefinedBy(chain, source) {
		return Resolution{Classification: types.ClassificationNotInSource}, nil
	}

	master := chain[0]
	winner := chain[len(chain)-1]
	resolution := Resolution{Winner: winner, Master: master}
	if winner.ModKey.Equal(source) {
		resolution.Classification = types.ClassificationAlreadyWinning
		return resolution, nil
	}

	masterLook := resolveAppearance(r.Links, master.Record)
	winnerLook := resolveAppearance(r.Links, winner.Record)
	if winnerLook.sameAs(masterLook) {
		resolution.Classification = types.ClassificationUseBaseline
	} else {
		resolution.Classification = types.ClassificationHasBetterFacegen
	}
	return resolution, nil
}

func dropEmptyContexts(chain []types.RecordContext) []types.RecordContext {
	out := make([]types.RecordContext, 0, len(chain))
	for _, entry := range chain {
		if entry.Record != nil {
			out = append(out, entry)
		}
	}
	return out
}

func chainDefinedBy(chain []types.RecordContext, source types.ModKey) bool {
	for _, entry := range chain {
		if entry.ModKey.Equal(source) {
			return true
		}
	}
	return false
}
