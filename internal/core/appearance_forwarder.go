package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// AppearanceForwarder writes a baseline appearance onto an override of
// the current winner held by the patch.
type AppearanceForwarder struct {
	Patch            ports.PatchStorePort
	GetProtectedFlag bool
}

func NewAppearanceForwarder(patch ports.PatchStorePort, getProtectedFlag bool) AppearanceForwarder {
	return AppearanceForwarder{Patch: patch, GetProtectedFlag: getProtectedFlag}
}

func (f AppearanceForwarder) Forward(baseline *types.Npc, winner *types.Npc) (*types.Npc, error) {
	if f.Patch == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("appearance forwarder requires a patch store")
	}
	if baseline == nil || winner == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("appearance forwarding requires baseline and winner records")
	}
	override := f.Patch.GetOrAddAsOverride(winner)

	override.FaceMorph = baseline.FaceMorph.DeepCopy()
	override.FaceParts = baseline.FaceParts.DeepCopy()
	override.FarAwayModel = baseline.FarAwayModel
	override.HairColor = baseline.HairColor

	override.HeadParts = append(override.HeadParts[:0], baseline.HeadParts...)

	override.HeadTexture = baseline.HeadTexture
	override.Height = baseline.Height
	override.Race = baseline.Race
	override.TextureLighting = baseline.TextureLighting.DeepCopy()

	override.TintLayers = override.TintLayers[:0]
	for _, layer := range baseline.TintLayers {
		override.TintLayers = append(override.TintLayers, layer.DeepCopy())
	}

	override.Weight = baseline.Weight
	override.WornArmor = baseline.WornArmor

	// the flag is only ever added, never cleared
	if f.GetProtectedFlag && baseline.Configuration.Flags.Has(types.NpcFlagProtected) {
		override.Configuration.Flags |= types.NpcFlagProtected
	}
	f.Patch.AddMasters(referencedMods(override)...)
	return override, nil
}

// referencedMods lists the plugins defining the forwarded references.
func referencedMods(npc *types.Npc) []types.ModKey {
	links := append([]types.FormKey{
		npc.FarAwayModel,
		npc.HairColor,
		npc.HeadTexture,
		npc.Race,
		npc.WornArmor,
	}, npc.HeadParts...)
	var mods []types.ModKey
	for _, link := range links {
		if !link.IsNull() {
			mods = append(mods, link.ModKey)
		}
	}
	return mods
}
