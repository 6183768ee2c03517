package ports

import (
	"context"

	"facegen-baseline/internal/types"
)

// PatchStorePort is the output plugin collecting new overrides.
type PatchStorePort interface {
	ModKey() types.ModKey
	// GetOrAddAsOverride returns the override of winner held by the patch,
	// creating it as a copy of winner the first time.
	GetOrAddAsOverride(winner *types.Npc) *types.Npc
	// AddMasters records plugins the patch references.
	AddMasters(keys ...types.ModKey)
	Mod() *types.Mod
}

type PatchWriterPort interface {
	WritePatch(ctx context.Context, mod *types.Mod) error
}

type PatchReaderPort interface {
	ReadPatch(path string) (*types.Mod, error)
}
