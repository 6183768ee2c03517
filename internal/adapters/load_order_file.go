package adapters

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

// LoadOrder is an in-memory load order, lowest priority first.
type LoadOrder struct {
	listings []types.ModListing
	index    map[string]int
}

func NewLoadOrder(listings []types.ModListing) *LoadOrder {
	order := &LoadOrder{index: map[string]int{}}
	for _, listing := range listings {
		key := strings.ToLower(strings.TrimSpace(string(listing.ModKey)))
		if _, ok := order.index[key]; ok {
			continue
		}
		order.index[key] = len(order.listings)
		order.listings = append(order.listings, listing)
	}
	return order
}

// NewLoadOrderFromMods builds a fully loaded order from plugins.
func NewLoadOrderFromMods(mods ...*types.Mod) *LoadOrder {
	listings := make([]types.ModListing, 0, len(mods))
	for _, mod := range mods {
		listings = append(listings, types.ModListing{ModKey: mod.ModKey, Mod: mod})
	}
	return NewLoadOrder(listings)
}

func (o *LoadOrder) TryGetMod(key types.ModKey) (*types.Mod, bool) {
	idx, ok := o.index[strings.ToLower(strings.TrimSpace(string(key)))]
	if !ok {
		return nil, false
	}
	mod := o.listings[idx].Mod
	if mod == nil {
		return nil, false
	}
	return mod, true
}

func (o *LoadOrder) Listings() []types.ModListing {
	return append([]types.ModListing(nil), o.listings...)
}

type LoadOrderFileAdapter struct{}

func NewLoadOrderFileAdapter() LoadOrderFileAdapter {
	return LoadOrderFileAdapter{}
}

// LoadLoadOrder reads pluginsFile and loads every active plugin from
// dataDir. The patch plugin is never part of its own input. Plugins that
// fail to load keep their slot with a nil Mod.
func (a LoadOrderFileAdapter) LoadLoadOrder(ctx context.Context, dataDir string, pluginsFile string, patchMod types.ModKey) (ports.LoadOrderPort, error) {
	content, err := os.ReadFile(pluginsFile)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("plugins file not found").
			WithCause(err)
	}
	names, err := ParsePluginsList(content)
	if err != nil {
		return nil, err
	}
	plugins := NewPluginFileAdapter(dataDir)
	var listings []types.ModListing
	for _, name := range names {
		key := types.ModKey(name)
		if patchMod != "" && key.Equal(patchMod) {
			continue
		}
		mod, err := plugins.LoadPlugin(key)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("mod", name).Msg("plugin could not be loaded")
			listings = append(listings, types.ModListing{ModKey: key, Reason: err.Error()})
			continue
		}
		listings = append(listings, types.ModListing{ModKey: key, Mod: mod})
	}
	log.Ctx(ctx).Debug().Int("plugins", len(listings)).Msg("load order loaded")
	return NewLoadOrder(listings), nil
}

// ParsePluginsList returns the active plugin names of a plugins.txt file.
// When any line carries the "*" active marker, unmarked lines are
// inactive; otherwise every listed plugin is active.
func ParsePluginsList(content []byte) ([]string, error) {
	type entry struct {
		name   string
		active bool
	}
	var entries []entry
	marked := false
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		active := strings.HasPrefix(line, "*")
		if active {
			marked = true
			line = strings.TrimSpace(strings.TrimPrefix(line, "*"))
		}
		if line == "" {
			continue
		}
		entries = append(entries, entry{name: line, active: active})
	}
	if err := scanner.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read plugins file").
			WithCause(err)
	}
	var names []string
	for _, e := range entries {
		if marked && !e.active {
			continue
		}
		names = append(names, e.name)
	}
	return names, nil
}

var _ ports.LoadOrderPort = (*LoadOrder)(nil)
var _ ports.LoadOrderSourcePort = LoadOrderFileAdapter{}
