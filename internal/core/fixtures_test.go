package core

import (
	"facegen-baseline/internal/adapters"
	"facegen-baseline/internal/types"
)

const (
	skyrim     types.ModKey = "Skyrim.esm"
	modA       types.ModKey = "ModA.esp"
	modB       types.ModKey = "ModB.esp"
	unofficial types.ModKey = "Unofficial Patch.esp"
	patchKey   types.ModKey = "FacegenBaseline.esp"
)

var (
	hairPart   = types.FormKey{ID: 0x1, ModKey: skyrim}
	browPart   = types.FormKey{ID: 0x2, ModKey: skyrim}
	eyesPart   = types.FormKey{ID: 0x3, ModKey: skyrim}
	nordRace   = types.FormKey{ID: 0x10, ModKey: skyrim}
	brownHair  = types.FormKey{ID: 0x20, ModKey: skyrim}
	headSkin   = types.FormKey{ID: 0x30, ModKey: skyrim}
	headSkinB  = types.FormKey{ID: 0x31, ModKey: skyrim}
	nakedSkin  = types.FormKey{ID: 0x40, ModKey: skyrim}
	lydiaKey   = types.FormKey{ID: 0xA2C94, ModKey: skyrim}
	ulfricKey  = types.FormKey{ID: 0x1414D, ModKey: skyrim}
	missingRef = types.FormKey{ID: 0xBAD, ModKey: skyrim}
)

func baseRecords() []types.Record {
	return []types.Record{
		{FormKey: hairPart, Type: types.RecordTypeHeadPart},
		{FormKey: browPart, Type: types.RecordTypeHeadPart},
		{FormKey: eyesPart, Type: types.RecordTypeHeadPart},
		{FormKey: nordRace, Type: types.RecordTypeRace},
		{FormKey: brownHair, Type: types.RecordTypeColor},
		{FormKey: headSkin, Type: types.RecordTypeTextureSet},
		{FormKey: headSkinB, Type: types.RecordTypeTextureSet},
		{FormKey: nakedSkin, Type: types.RecordTypeArmor},
	}
}

func testNpc(key types.FormKey, editorID string, opts ...func(*types.Npc)) *types.Npc {
	npc := &types.Npc{
		FormKey:     key,
		EditorID:    editorID,
		Name:        editorID,
		HeadParts:   []types.FormKey{hairPart, browPart},
		HeadTexture: headSkin,
		Race:        nordRace,
		HairColor:   brownHair,
		Height:      1,
		Weight:      40,
	}
	for _, opt := range opts {
		opt(npc)
	}
	return npc
}

func testMod(key types.ModKey, npcs ...*types.Npc) *types.Mod {
	mod := &types.Mod{ModKey: key, Npcs: npcs}
	if key == skyrim {
		mod.Records = baseRecords()
	}
	return mod
}

func baselineLook(npc *types.Npc) {
	npc.FaceMorph = &types.FaceMorph{NoseLongVsShort: 0.25, JawNarrowVsWide: -0.5}
	npc.FaceParts = &types.FaceParts{Nose: 2, Eyes: 1, Mouth: 3}
	npc.HeadParts = []types.FormKey{eyesPart, hairPart}
	npc.TextureLighting = &types.Color{R: 200, G: 180, B: 170}
	index := uint16(1)
	interpolation := float32(0.5)
	npc.TintLayers = []types.TintLayer{{
		Index:              &index,
		Color:              &types.Color{R: 120, G: 80, B: 60, A: 255},
		InterpolationValue: &interpolation,
	}}
	npc.Height = 1.02
	npc.Weight = 55
	npc.WornArmor = nakedSkin
}

type testEnv struct {
	loadOrder *adapters.LoadOrder
	links     adapters.LinkCacheAdapter
	patch     *adapters.PatchModAdapter
}

func newTestEnv(mods ...*types.Mod) testEnv {
	order := adapters.NewLoadOrderFromMods(mods...)
	return testEnv{
		loadOrder: order,
		links:     adapters.NewLinkCacheAdapter(order),
		patch:     adapters.NewPatchModAdapter(patchKey),
	}
}
