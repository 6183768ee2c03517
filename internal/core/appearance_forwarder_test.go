package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facegen-baseline/internal/adapters"
	"facegen-baseline/internal/types"
)

func appearanceOf(npc *types.Npc) types.Npc {
	return types.Npc{
		FaceMorph:       npc.FaceMorph,
		FaceParts:       npc.FaceParts,
		FarAwayModel:    npc.FarAwayModel,
		HairColor:       npc.HairColor,
		HeadParts:       npc.HeadParts,
		HeadTexture:     npc.HeadTexture,
		Height:          npc.Height,
		Race:            npc.Race,
		TextureLighting: npc.TextureLighting,
		TintLayers:      npc.TintLayers,
		Weight:          npc.Weight,
		WornArmor:       npc.WornArmor,
	}
}

func TestForwardCopiesAppearanceAndKeepsIdentity(t *testing.T) {
	baseline := testNpc(lydiaKey, "Lydia", baselineLook)
	winner := testNpc(lydiaKey, "Lydia", func(n *types.Npc) {
		n.Name = "Lydia (fixed)"
		n.Configuration.Level = 12
		n.Keywords = []types.FormKey{{ID: 0x99, ModKey: skyrim}}
		n.HeadParts = []types.FormKey{browPart, hairPart, eyesPart}
		n.TintLayers = []types.TintLayer{{}, {}}
	})
	patch := adapters.NewPatchModAdapter(patchKey)

	override, err := NewAppearanceForwarder(patch, true).Forward(baseline, winner)
	require.NoError(t, err)

	if diff := cmp.Diff(appearanceOf(baseline), appearanceOf(override)); diff != "" {
		t.Fatalf("unexpected appearance (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Lydia (fixed)", override.Name)
	assert.Equal(t, int16(12), override.Configuration.Level)
	assert.Equal(t, winner.Keywords, override.Keywords)
	assert.Equal(t, lydiaKey, override.FormKey)

	// the winner itself is untouched
	assert.Len(t, winner.HeadParts, 3)
	assert.Len(t, winner.TintLayers, 2)
}

func TestForwardDoesNotAliasBaseline(t *testing.T) {
	baseline := testNpc(lydiaKey, "Lydia", baselineLook)
	winner := testNpc(lydiaKey, "Lydia")
	patch := adapters.NewPatchModAdapter(patchKey)

	override, err := NewAppearanceForwarder(patch, true).Forward(baseline, winner)
	require.NoError(t, err)

	baseline.FaceMorph.NoseLongVsShort = 9
	baseline.FaceParts.Nose = 9
	baseline.HeadParts[0] = browPart
	baseline.TextureLighting.R = 1
	baseline.TintLayers[0].Color.R = 1
	*baseline.TintLayers[0].Index = 9

	assert.Equal(t, float32(0.25), override.FaceMorph.NoseLongVsShort)
	assert.Equal(t, uint32(2), override.FaceParts.Nose)
	assert.Equal(t, eyesPart, override.HeadParts[0])
	assert.Equal(t, uint8(200), override.TextureLighting.R)
	assert.Equal(t, uint8(120), override.TintLayers[0].Color.R)
	assert.Equal(t, uint16(1), *override.TintLayers[0].Index)
}

func TestForwardProtectedFlag(t *testing.T) {
	tests := []struct {
		name          string
		getProtected  bool
		baselineFlags types.NpcFlags
		winnerFlags   types.NpcFlags
		wantProtected bool
	}{
		{name: "added when enabled", getProtected: true, baselineFlags: types.NpcFlagProtected, wantProtected: true},
		{name: "not added when disabled", getProtected: false, baselineFlags: types.NpcFlagProtected, wantProtected: false},
		{name: "never cleared", getProtected: true, winnerFlags: types.NpcFlagProtected, wantProtected: true},
		{name: "absent stays absent", getProtected: true, wantProtected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline := testNpc(lydiaKey, "Lydia", func(n *types.Npc) { n.Configuration.Flags = tt.baselineFlags })
			winner := testNpc(lydiaKey, "Lydia", func(n *types.Npc) {
				n.Configuration.Flags = tt.winnerFlags | types.NpcFlagUnique
			})
			patch := adapters.NewPatchModAdapter(patchKey)

			override, err := NewAppearanceForwarder(patch, tt.getProtected).Forward(baseline, winner)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantProtected, override.Configuration.Flags.Has(types.NpcFlagProtected)); diff != "" {
				t.Fatalf("unexpected protected flag (-want +got):\n%s", diff)
			}
			assert.True(t, override.Configuration.Flags.Has(types.NpcFlagUnique))
		})
	}
}

func TestForwardReusesExistingOverride(t *testing.T) {
	baseline := testNpc(lydiaKey, "Lydia", baselineLook)
	winner := testNpc(lydiaKey, "Lydia")
	patch := adapters.NewPatchModAdapter(patchKey)
	forwarder := NewAppearanceForwarder(patch, true)

	first, err := forwarder.Forward(baseline, winner)
	require.NoError(t, err)
	second, err := forwarder.Forward(baseline, winner)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, patch.Mod().Npcs, 1)
	if diff := cmp.Diff(appearanceOf(baseline), appearanceOf(second)); diff != "" {
		t.Fatalf("rerun changed appearance (-want +got):\n%s", diff)
	}
}

func TestForwardRequiresRecords(t *testing.T) {
	forwarder := NewAppearanceForwarder(adapters.NewPatchModAdapter(patchKey), true)
	_, err := forwarder.Forward(nil, testNpc(lydiaKey, "Lydia"))
	require.Error(t, err)
	_, err = NewAppearanceForwarder(nil, true).Forward(testNpc(lydiaKey, "Lydia"), testNpc(lydiaKey, "Lydia"))
	require.Error(t, err)
}

func TestForwardAddsReferencedPluginsAsMasters(t *testing.T) {
	modAHair := types.FormKey{ID: 0x801, ModKey: modA}
	modBArmor := types.FormKey{ID: 0x802, ModKey: modB}
	baseline := testNpc(lydiaKey, "Lydia", baselineLook, func(n *types.Npc) {
		n.HeadParts = []types.FormKey{modAHair, eyesPart}
		n.WornArmor = modBArmor
	})
	winner := testNpc(lydiaKey, "Lydia")
	patch := adapters.NewPatchModAdapter(patchKey)

	_, err := NewAppearanceForwarder(patch, true).Forward(baseline, winner)
	require.NoError(t, err)

	if diff := cmp.Diff([]types.ModKey{skyrim, modB, modA}, patch.Mod().Masters); diff != "" {
		t.Fatalf("unexpected masters (-want +got):\n%s", diff)
	}
}
