package ports

import (
	"context"

	"facegen-baseline/internal/types"
)

// LinkCachePort resolves override chains and references.
type LinkCachePort interface {
	// ResolveChain returns every definition of key in load order, master
	// first and current winner last. The chain is empty when no plugin
	// defines key.
	ResolveChain(ctx context.Context, key types.FormKey) ([]types.RecordContext, error)

	// Resolve maps a reference to the identity of the record it points at.
	// It reports false for null links, missing targets, and targets of
	// another record type.
	Resolve(link types.FormKey, want types.RecordType) (types.FormKey, bool)
}
