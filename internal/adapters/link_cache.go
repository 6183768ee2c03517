package adapters

import (
	"context"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// LinkCacheAdapter indexes every record of a load order by form key.
type LinkCacheAdapter struct {
	chains  map[types.FormKey][]types.RecordContext
	winners map[types.FormKey]types.RecordType
}

func NewLinkCacheAdapter(loadOrder ports.LoadOrderPort) LinkCacheAdapter {
	cache := LinkCacheAdapter{
		chains:  map[types.FormKey][]types.RecordContext{},
		winners: map[types.FormKey]types.RecordType{},
	}
	if loadOrder == nil {
		return cache
	}
	for _, listing := range loadOrder.Listings() {
		if listing.Mod == nil {
			continue
		}
		for _, record := range listing.Mod.Records {
			if record.FormKey.IsNull() {
				continue
			}
			cache.winners[record.FormKey.Normalized()] = record.Type
		}
		for _, npc := range listing.Mod.Npcs {
			if npc == nil || npc.FormKey.IsNull() {
				continue
			}
			key := npc.FormKey.Normalized()
			cache.chains[key] = append(cache.chains[key], types.RecordContext{
				ModKey: listing.Mod.ModKey,
				Record: npc,
			})
			cache.winners[key] = types.RecordTypeNpc
		}
	}
	return cache
}

func (c LinkCacheAdapter) ResolveChain(ctx context.Context, key types.FormKey) ([]types.RecordContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]types.RecordContext(nil), c.chains[key.Normalized()]...), nil
}

func (c LinkCacheAdapter) Resolve(link types.FormKey, want types.RecordType) (types.FormKey, bool) {
	if link.IsNull() {
		return types.FormKey{}, false
	}
	recordType, ok := c.winners[link.Normalized()]
	if !ok || recordType != want {
		return types.FormKey{}, false
	}
	return link, true
}

var _ ports.LinkCachePort = LinkCacheAdapter{}
