package core

import (
	"context"
	"slices"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"facegen-baseline/internal/policies"
	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

type SelectedSource struct {
	ModKey types.ModKey
	Mod    *types.Mod
}

type SelectResult struct {
	Sources []SelectedSource
	Skipped []string
}

// SourceSelector turns the configured baseline plugin names into the
// ordered list of loaded plugins to process.
type SourceSelector struct {
	LoadOrder ports.LoadOrderPort
}

func NewSourceSelector(loadOrder ports.LoadOrderPort) SourceSelector {
	return SourceSelector{LoadOrder: loadOrder}
}

// Select resolves settings.BaselineMods against the load order. The last
// configured plugin is processed first. Plugins that cannot be resolved
// are logged and skipped.
func (s SourceSelector) Select(ctx context.Context, settings types.Settings) (SelectResult, error) {
	if len(settings.BaselineMods) == 0 {
		return SelectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("baseline mods list is empty")
	}
	if s.LoadOrder == nil {
		return SelectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source selector requires a load order")
	}
	if policies.NewExclusionPolicy(settings.ExcludeNPCEditorID).Empty() {
		log.Ctx(ctx).Info().Msg("excluded list is empty")
	}

	ordered := append([]string(nil), settings.BaselineMods...)
	if len(ordered) > 1 {
		slices.Reverse(ordered)
	}

	result := SelectResult{}
	for _, name := range ordered {
		key := types.ModKey(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if containsSource(result.Sources, key) {
			continue
		}
		mod, ok := s.LoadOrder.TryGetMod(key)
		if !ok || mod == nil {
			log.Ctx(ctx).Warn().Str("mod", name).Msg("baseline mod not found in load order")
			result.Skipped = append(result.Skipped, name)
			continue
		}
		result.Sources = append(result.Sources, SelectedSource{ModKey: mod.ModKey, Mod: mod})
	}
	return result, nil
}

func containsSource(sources []SelectedSource, key types.ModKey) bool {
	for _, source := range sources {
		if source.ModKey.Equal(key) {
			return true
		}
	}
	return false
}
