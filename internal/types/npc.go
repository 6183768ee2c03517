package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type NpcFlags uint32

const (
	NpcFlagFemale                    NpcFlags = 0x1
	NpcFlagEssential                 NpcFlags = 0x2
	NpcFlagIsCharGenFacePreset       NpcFlags = 0x4
	NpcFlagRespawn                   NpcFlags = 0x8
	NpcFlagAutoCalcStats             NpcFlags = 0x10
	NpcFlagUnique                    NpcFlags = 0x20
	NpcFlagDoesNotAffectStealthMeter NpcFlags = 0x40
	NpcFlagPCLevelMult               NpcFlags = 0x80
	NpcFlagProtected                 NpcFlags = 0x800
	NpcFlagSummonable                NpcFlags = 0x4000
	NpcFlagDoesNotBleed              NpcFlags = 0x10000
	NpcFlagSimpleActor               NpcFlags = 0x100000
)

var npcFlagNames = []struct {
	flag NpcFlags
	name string
}{
	{NpcFlagFemale, "female"},
	{NpcFlagEssential, "essential"},
	{NpcFlagIsCharGenFacePreset, "chargen_face_preset"},
	{NpcFlagRespawn, "respawn"},
	{NpcFlagAutoCalcStats, "auto_calc_stats"},
	{NpcFlagUnique, "unique"},
	{NpcFlagDoesNotAffectStealthMeter, "does_not_affect_stealth_meter"},
	{NpcFlagPCLevelMult, "pc_level_mult"},
	{NpcFlagProtected, "protected"},
	{NpcFlagSummonable, "summonable"},
	{NpcFlagDoesNotBleed, "does_not_bleed"},
	{NpcFlagSimpleActor, "simple_actor"},
}

func (f NpcFlags) Has(flag NpcFlags) bool {
	return f&flag == flag
}

func (f NpcFlags) IsZero() bool {
	return f == 0
}

func (f NpcFlags) Names() []string {
	var names []string
	for _, entry := range npcFlagNames {
		if f.Has(entry.flag) {
			names = append(names, entry.name)
		}
	}
	return names
}

func (f NpcFlags) MarshalYAML() (interface{}, error) {
	return f.Names(), nil
}

func (f *NpcFlags) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return err
	}
	var parsed NpcFlags
	for _, name := range names {
		found := false
		for _, entry := range npcFlagNames {
			if entry.name == name {
				parsed |= entry.flag
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown npc flag: %s", name)
		}
	}
	*f = parsed
	return nil
}

type NpcConfiguration struct {
	Flags NpcFlags `yaml:"flags,omitempty"`
	Level int16    `yaml:"level,omitempty"`
}

type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a,omitempty"`
}

func (c *Color) DeepCopy() *Color {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

type FaceMorph struct {
	NoseLongVsShort         float32 `yaml:"nose_long_vs_short"`
	NoseUpVsDown            float32 `yaml:"nose_up_vs_down"`
	JawUpVsDown             float32 `yaml:"jaw_up_vs_down"`
	JawNarrowVsWide         float32 `yaml:"jaw_narrow_vs_wide"`
	JawForwardVsBack        float32 `yaml:"jaw_forward_vs_back"`
	CheeksUpVsDown          float32 `yaml:"cheeks_up_vs_down"`
	CheeksForwardVsBack     float32 `yaml:"cheeks_forward_vs_back"`
	EyesUpVsDown            float32 `yaml:"eyes_up_vs_down"`
	EyesInVsOut             float32 `yaml:"eyes_in_vs_out"`
	BrowsUpVsDown           float32 `yaml:"brows_up_vs_down"`
	BrowsInVsOut            float32 `yaml:"brows_in_vs_out"`
	BrowsForwardVsBack      float32 `yaml:"brows_forward_vs_back"`
	LipsUpVsDown            float32 `yaml:"lips_up_vs_down"`
	LipsInVsOut             float32 `yaml:"lips_in_vs_out"`
	ChinNarrowVsWide        float32 `yaml:"chin_narrow_vs_wide"`
	ChinUpVsDown            float32 `yaml:"chin_up_vs_down"`
	ChinUnderbiteVsOverbite float32 `yaml:"chin_underbite_vs_overbite"`
	EyesForwardVsBack       float32 `yaml:"eyes_forward_vs_back"`
}

func (m *FaceMorph) DeepCopy() *FaceMorph {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

type FaceParts struct {
	Nose  uint32 `yaml:"nose"`
	Eyes  uint32 `yaml:"eyes"`
	Mouth uint32 `yaml:"mouth"`
}

func (p *FaceParts) DeepCopy() *FaceParts {
	if p == nil {
		return nil
	}
	out := *p
	return &out
}

type TintLayer struct {
	Index              *uint16  `yaml:"index,omitempty"`
	Color              *Color   `yaml:"color,omitempty"`
	InterpolationValue *float32 `yaml:"interpolation_value,omitempty"`
	Preset             *int16   `yaml:"preset,omitempty"`
}

func (l TintLayer) DeepCopy() TintLayer {
	return TintLayer{
		Index:              clonePtr(l.Index),
		Color:              l.Color.DeepCopy(),
		InterpolationValue: clonePtr(l.InterpolationValue),
		Preset:             clonePtr(l.Preset),
	}
}

// CloneTintLayers returns independent copies of every layer.
func CloneTintLayers(layers []TintLayer) []TintLayer {
	if layers == nil {
		return nil
	}
	out := make([]TintLayer, 0, len(layers))
	for _, layer := range layers {
		out = append(out, layer.DeepCopy())
	}
	return out
}

// Npc is a character record as defined by one plugin.
type Npc struct {
	FormKey       FormKey          `yaml:"form_key"`
	EditorID      string           `yaml:"editor_id,omitempty"`
	Name          string           `yaml:"name,omitempty"`
	Class         FormKey          `yaml:"class,omitempty"`
	Voice         FormKey          `yaml:"voice,omitempty"`
	Keywords      []FormKey        `yaml:"keywords,omitempty"`
	Configuration NpcConfiguration `yaml:"configuration,omitempty"`

	FaceMorph       *FaceMorph  `yaml:"face_morph,omitempty"`
	FaceParts       *FaceParts  `yaml:"face_parts,omitempty"`
	FarAwayModel    FormKey     `yaml:"far_away_model,omitempty"`
	HairColor       FormKey     `yaml:"hair_color,omitempty"`
	HeadParts       []FormKey   `yaml:"head_parts,omitempty"`
	HeadTexture     FormKey     `yaml:"head_texture,omitempty"`
	Height          float32     `yaml:"height,omitempty"`
	Race            FormKey     `yaml:"race,omitempty"`
	TextureLighting *Color      `yaml:"texture_lighting,omitempty"`
	TintLayers      []TintLayer `yaml:"tint_layers,omitempty"`
	Weight          float32     `yaml:"weight,omitempty"`
	WornArmor       FormKey     `yaml:"worn_armor,omitempty"`
}

// DeepCopy returns a record sharing no mutable storage with n.
func (n *Npc) DeepCopy() *Npc {
	if n == nil {
		return nil
	}
	out := *n
	out.Keywords = cloneSlice(n.Keywords)
	out.FaceMorph = n.FaceMorph.DeepCopy()
	out.FaceParts = n.FaceParts.DeepCopy()
	out.HeadParts = cloneSlice(n.HeadParts)
	out.TextureLighting = n.TextureLighting.DeepCopy()
	out.TintLayers = CloneTintLayers(n.TintLayers)
	return &out
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}

func cloneSlice[T any](values []T) []T {
	if values == nil {
		return nil
	}
	return append(make([]T, 0, len(values)), values...)
}
