package adapters

import (
	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// PatchModAdapter is the in-memory output plugin of a run.
type PatchModAdapter struct {
	mod       *types.Mod
	overrides map[types.FormKey]*types.Npc
}

func NewPatchModAdapter(key types.ModKey) *PatchModAdapter {
	return &PatchModAdapter{
		mod:       &types.Mod{ModKey: key},
		overrides: map[types.FormKey]*types.Npc{},
	}
}

func (a *PatchModAdapter) ModKey() types.ModKey {
	return a.mod.ModKey
}

func (a *PatchModAdapter) GetOrAddAsOverride(winner *types.Npc) *types.Npc {
	key := winner.FormKey.Normalized()
	if existing, ok := a.overrides[key]; ok {
		return existing
	}
	override := winner.DeepCopy()
	a.overrides[key] = override
	a.mod.Npcs = append(a.mod.Npcs, override)
	a.addMaster(winner.FormKey.ModKey)
	return override
}

func (a *PatchModAdapter) AddMasters(keys ...types.ModKey) {
	for _, key := range keys {
		a.addMaster(key)
	}
}

func (a *PatchModAdapter) Mod() *types.Mod {
	return a.mod
}

func (a *PatchModAdapter) addMaster(key types.ModKey) {
	if key == "" || key.Equal(a.mod.ModKey) {
		return
	}
	for _, master := range a.mod.Masters {
		if master.Equal(key) {
			return
		}
	}
	a.mod.Masters = append(a.mod.Masters, key)
}

var _ ports.PatchStorePort = (*PatchModAdapter)(nil)
