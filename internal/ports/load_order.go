package ports

import (
	"context"

	"facegen-baseline/internal/types"
)

// LoadOrderPort gives name based access to the active plugins.
type LoadOrderPort interface {
	// TryGetMod returns the loaded plugin for key. ok is false when the
	// plugin is absent from the load order or could not be loaded.
	TryGetMod(key types.ModKey) (mod *types.Mod, ok bool)
	// Listings returns every slot in load order, lowest priority first.
	Listings() []types.ModListing
}

// LoadOrderSourcePort materialises a load order from durable storage.
type LoadOrderSourcePort interface {
	LoadLoadOrder(ctx context.Context, dataDir string, pluginsFile string, patchMod types.ModKey) (LoadOrderPort, error)
}
