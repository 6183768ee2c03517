package core

import (
	"cmp"
	"slices"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// resolvedAppearance is the comparable view of an NPC's appearance with
// every reference replaced by the identity of its target. Unresolvable
// references become the null key.
type resolvedAppearance struct {
	FaceMorph       *types.FaceMorph
	FaceParts       *types.FaceParts
	FarAwayModel    types.FormKey
	HairColor       types.FormKey
	HeadParts       []types.FormKey
	HeadTexture     types.FormKey
	Height          float32
	Race            types.FormKey
	TextureLighting *types.Color
	TintLayers      []types.TintLayer
	Weight          float32
	WornArmor       types.FormKey
}

func resolveAppearance(links ports.LinkCachePort, npc *types.Npc) resolvedAppearance {
	resolve := func(link types.FormKey, want types.RecordType) types.FormKey {
		target, ok := links.Resolve(link, want)
		if !ok {
			return types.FormKey{}
		}
		return target.Normalized()
	}
	return resolvedAppearance{
		FaceMorph:       npc.FaceMorph.DeepCopy(),
		FaceParts:       npc.FaceParts.DeepCopy(),
		FarAwayModel:    resolve(npc.FarAwayModel, types.RecordTypeArmor),
		HairColor:       resolve(npc.HairColor, types.RecordTypeColor),
		HeadParts:       resolveHeadPartSet(npc.HeadParts, resolve),
		HeadTexture:     resolve(npc.HeadTexture, types.RecordTypeTextureSet),
		Height:          npc.Height,
		Race:            resolve(npc.Race, types.RecordTypeRace),
		TextureLighting: npc.TextureLighting.DeepCopy(),
		TintLayers:      types.CloneTintLayers(npc.TintLayers),
		Weight:          npc.Weight,
		WornArmor:       resolve(npc.WornArmor, types.RecordTypeArmor),
	}
}

// resolveHeadPartSet returns the head parts as a sorted set so that
// membership, not order, decides equality.
func resolveHeadPartSet(links []types.FormKey, resolve func(types.FormKey, types.RecordType) types.FormKey) []types.FormKey {
	set := make([]types.FormKey, 0, len(links))
	for _, link := range links {
		set = append(set, resolve(link, types.RecordTypeHeadPart))
	}
	slices.SortFunc(set, compareFormKeys)
	return slices.Compact(set)
}

func compareFormKeys(a types.FormKey, b types.FormKey) int {
	if c := cmp.Compare(a.ModKey, b.ModKey); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// sameAs compares two views field by field. Empty and nil collections
// are equal.
func (a resolvedAppearance) sameAs(other resolvedAppearance) bool {
	return gocmp.Equal(a, other, cmpopts.EquateEmpty())
}
