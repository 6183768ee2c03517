package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"
)

// ModKey names one plugin of the load order, e.g. "Skyrim.esm".
type ModKey string

// Equal reports whether two plugin names refer to the same file. Plugin
// file names are case-insensitive.
func (k ModKey) Equal(other ModKey) bool {
	return strings.EqualFold(strings.TrimSpace(string(k)), strings.TrimSpace(string(other)))
}

func (k ModKey) String() string {
	return string(k)
}

// maxFormID is the largest in-plugin index a FormKey can carry.
const maxFormID = 0xFFFFFF

// FormKey identifies one logical record across every plugin defining it.
// The zero value is the null reference.
type FormKey struct {
	ID     uint32
	ModKey ModKey
}

func (k FormKey) IsZero() bool {
	return k.ID == 0 && k.ModKey == ""
}

// IsNull is an alias of IsZero that reads better on reference fields.
func (k FormKey) IsNull() bool {
	return k.IsZero()
}

// Equal compares two keys using plugin name semantics.
func (k FormKey) Equal(other FormKey) bool {
	return k.ID == other.ID && k.ModKey.Equal(other.ModKey)
}

// Normalized returns a key usable as a map index.
func (k FormKey) Normalized() FormKey {
	return FormKey{ID: k.ID, ModKey: ModKey(strings.ToLower(strings.TrimSpace(string(k.ModKey))))}
}

func (k FormKey) String() string {
	if k.IsZero() {
		return "Null"
	}
	return fmt.Sprintf("%06X:%s", k.ID, k.ModKey)
}

// ParseFormKey parses the "0012E49:Skyrim.esm" text form.
func ParseFormKey(value string) (FormKey, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "null") {
		return FormKey{}, nil
	}
	parts := strings.SplitN(trimmed, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return FormKey{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid form key: %s", value))
	}
	id, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 16, 32)
	if err != nil || id > maxFormID {
		return FormKey{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid form id: %s", value)).
			WithCause(err)
	}
	return FormKey{ID: uint32(id), ModKey: ModKey(strings.TrimSpace(parts[1]))}, nil
}

func (k FormKey) MarshalYAML() (interface{}, error) {
	if k.IsZero() {
		return nil, nil
	}
	return k.String(), nil
}

func (k *FormKey) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseFormKey(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type RecordType string

const (
	RecordTypeNpc          RecordType = "NPC_"
	RecordTypeHeadPart     RecordType = "HDPT"
	RecordTypeRace         RecordType = "RACE"
	RecordTypeColor        RecordType = "CLFM"
	RecordTypeTextureSet   RecordType = "TXST"
	RecordTypeArmor        RecordType = "ARMO"
	RecordTypeLightingTmpl RecordType = "LCRT"
)

// Record is any non-NPC major record an NPC can point at.
type Record struct {
	FormKey  FormKey    `yaml:"form_key"`
	EditorID string     `yaml:"editor_id,omitempty"`
	Type     RecordType `yaml:"type"`
}
