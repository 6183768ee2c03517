package adapters

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// PatchFileAdapter persists the patch plugin as a YAML plugin file.
type PatchFileAdapter struct {
	Path string
}

func NewPatchFileAdapter(path string) PatchFileAdapter {
	return PatchFileAdapter{Path: path}
}

func (a PatchFileAdapter) WritePatch(ctx context.Context, mod *types.Mod) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mod == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch mod is nil")
	}
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create patch directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(sortedPatch(mod))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode patch yaml").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write patch file").
			WithCause(err)
	}
	return nil
}

func (a PatchFileAdapter) ReadPatch(path string) (*types.Mod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("patch file not found").
			WithCause(err)
	}
	var mod types.Mod
	if err := yaml.Unmarshal(data, &mod); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse patch yaml").
			WithCause(err)
	}
	return &mod, nil
}

// sortedPatch orders overrides by form key so reruns produce identical
// files.
func sortedPatch(mod *types.Mod) types.Mod {
	out := *mod
	out.Npcs = append([]*types.Npc(nil), mod.Npcs...)
	sort.SliceStable(out.Npcs, func(i, j int) bool {
		return out.Npcs[i].FormKey.String() < out.Npcs[j].FormKey.String()
	})
	return out
}

var _ ports.PatchWriterPort = PatchFileAdapter{}
var _ ports.PatchReaderPort = PatchFileAdapter{}
