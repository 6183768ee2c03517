package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"facegen-baseline/internal/core"
)

// Validate checks the settings and reports which baseline plugins the
// load order can supply, without writing anything.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	if len(req.Settings.BaselineMods) == 0 {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("baseline mods list is empty")
	}
	if err := checkConfigVersion(req.ConfigVersion); err != nil {
		return ValidateResult{}, err
	}
	loadOrder, err := s.loadOrder(ctx, req.DataDir, req.PluginsFile, patchModKey(req.PatchMod))
	if err != nil {
		return ValidateResult{}, err
	}
	selected, err := core.NewSourceSelector(loadOrder).Select(ctx, req.Settings)
	if err != nil {
		return ValidateResult{}, err
	}
	result := ValidateResult{Skipped: selected.Skipped}
	for _, source := range selected.Sources {
		result.Sources = append(result.Sources, string(source.ModKey))
	}
	return result, nil
}
