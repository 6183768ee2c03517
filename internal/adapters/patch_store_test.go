package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facegen-baseline/internal/types"
)

func TestGetOrAddAsOverrideCopiesWinnerOnce(t *testing.T) {
	store := NewPatchModAdapter("FacegenBaseline.esp")
	winner := &types.Npc{
		FormKey:   types.FormKey{ID: 0xA2C94, ModKey: "Skyrim.esm"},
		EditorID:  "Lydia",
		HeadParts: []types.FormKey{{ID: 0x1, ModKey: "Skyrim.esm"}},
	}

	override := store.GetOrAddAsOverride(winner)
	require.NotSame(t, winner, override)
	assert.Equal(t, winner.EditorID, override.EditorID)

	override.HeadParts[0] = types.FormKey{ID: 0x2, ModKey: "Skyrim.esm"}
	assert.Equal(t, uint32(0x1), winner.HeadParts[0].ID, "override must not alias the winner")

	again := store.GetOrAddAsOverride(&types.Npc{FormKey: types.FormKey{ID: 0xA2C94, ModKey: "SKYRIM.ESM"}})
	assert.Same(t, override, again)

	mod := store.Mod()
	assert.Equal(t, types.ModKey("FacegenBaseline.esp"), mod.ModKey)
	assert.Len(t, mod.Npcs, 1)
	assert.Equal(t, []types.ModKey{"Skyrim.esm"}, mod.Masters)
}

func TestGetOrAddAsOverrideCollectsMasters(t *testing.T) {
	store := NewPatchModAdapter("FacegenBaseline.esp")
	store.GetOrAddAsOverride(&types.Npc{FormKey: types.FormKey{ID: 0x1, ModKey: "Skyrim.esm"}})
	store.GetOrAddAsOverride(&types.Npc{FormKey: types.FormKey{ID: 0x2, ModKey: "skyrim.esm"}})
	store.GetOrAddAsOverride(&types.Npc{FormKey: types.FormKey{ID: 0x800, ModKey: "ModA.esp"}})

	assert.Equal(t, []types.ModKey{"Skyrim.esm", "ModA.esp"}, store.Mod().Masters)
	assert.Len(t, store.Mod().Npcs, 3)
}

func TestAddMastersSkipsDuplicatesAndSelf(t *testing.T) {
	store := NewPatchModAdapter("FacegenBaseline.esp")
	store.AddMasters("Skyrim.esm", "", "facegenbaseline.esp", "SKYRIM.ESM", "ModA.esp")

	assert.Equal(t, []types.ModKey{"Skyrim.esm", "ModA.esp"}, store.Mod().Masters)
}
