package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"facegen-baseline/internal/policies"
	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// Patcher runs one pass over the baseline plugins and forwards baseline
// appearances into the patch.
type Patcher struct {
	LoadOrder ports.LoadOrderPort
	Links     ports.LinkCachePort
	Patch     ports.PatchStorePort
}

func NewPatcher(loadOrder ports.LoadOrderPort, links ports.LinkCachePort, patch ports.PatchStorePort) Patcher {
	return Patcher{
		LoadOrder: loadOrder,
		Links:     links,
		Patch:     patch,
	}
}

func (p Patcher) Run(ctx context.Context, settings types.Settings) (types.RunSummary, error) {
	if p.Links == nil || p.Patch == nil {
		return types.RunSummary{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patcher requires link cache and patch store ports")
	}
	selected, err := NewSourceSelector(p.LoadOrder).Select(ctx, settings)
	if err != nil {
		return types.RunSummary{}, err
	}
	assert.NotEmpty(ctx, string(p.Patch.ModKey()), "patch mod key must be set")

	resolver := NewConflictResolver(p.Links, policies.NewExclusionPolicy(settings.ExcludeNPCEditorID))
	forwarder := NewAppearanceForwarder(p.Patch, settings.GetProtectedFlag)
	processed := ProcessedKeys{}

	summary := types.RunSummary{
		PatchMod:       p.Patch.ModKey(),
		SkippedSources: selected.Skipped,
	}
	for _, source := range selected.Sources {
		summary.ProcessedSources = append(summary.ProcessedSources, string(source.ModKey))
		summary.NpcRecords += len(source.Mod.Npcs)

		for _, npc := range source.Mod.Npcs {
			if npc == nil {
				continue
			}
			resolution, err := resolver.Evaluate(ctx, source.ModKey, npc, processed)
			if err != nil {
				return types.RunSummary{}, err
			}
			if err := p.apply(ctx, &summary, forwarder, source.ModKey, npc, resolution); err != nil {
				return types.RunSummary{}, err
			}
		}
	}

	log.Ctx(ctx).Info().
		Int("npc_records", summary.NpcRecords).
		Int("already_wins", summary.AlreadyWins).
		Int("use_baseline", summary.UseBaseline).
		Int("has_better_facegen", summary.HasBetterFacegen).
		Int("excluded", summary.Excluded).
		Msg("baseline pass completed")
	return summary, nil
}

func (p Patcher) apply(ctx context.Context, summary *types.RunSummary, forwarder AppearanceForwarder, source types.ModKey, npc *types.Npc, resolution Resolution) error {
	logger := log.Ctx(ctx).With().
		Str("form_key", npc.FormKey.String()).
		Str("editor_id", npc.EditorID).
		Str("source", string(source)).
		Logger()

	switch resolution.Classification {
	case types.ClassificationAlreadyWinning:
		logger.Info().Msg("baseline is winning override")
		summary.AlreadyWins++
	case types.ClassificationUseBaseline:
		if _, err := forwarder.Forward(npc, resolution.Winner.Record); err != nil {
			return err
		}
		logger.Info().Str("winner", string(resolution.Winner.ModKey)).Msg("baseline appearance used")
		summary.UseBaseline++
	case types.ClassificationHasBetterFacegen:
		logger.Info().Str("winner", string(resolution.Winner.ModKey)).Msg("appearance provided by winner")
		summary.HasBetterFacegen++
	case types.ClassificationExcluded:
		logger.Debug().Str("keyword", resolution.ExcludedBy).Msg("excluded by editor id keyword")
		summary.Excluded++
	default:
		logger.Debug().Str("classification", string(resolution.Classification)).Msg("record skipped")
		return nil
	}
	summary.Outcomes = append(summary.Outcomes, types.RecordOutcome{
		FormKey:        npc.FormKey,
		EditorID:       npc.EditorID,
		Name:           npc.Name,
		Source:         source,
		Winner:         resolution.Winner.ModKey,
		Classification: resolution.Classification,
	})
	return nil
}
