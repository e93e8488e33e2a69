// Package mapper - Mapper registry
package mapper

import (
	"fmt"
	"sort"
	"sync"

	"cloudcost/core/focus"
)

// Registry manages provider mapper registration. The set of providers is
// closed: adding a fifth provider means registering a new mapper, not
// modifying shared logic.
type Registry struct {
	mu      sync.RWMutex
	mappers map[focus.Provider]ProviderMapper
}

// NewRegistry creates an empty mapper registry
func NewRegistry() *Registry {
	return &Registry{
		mappers: make(map[focus.Provider]ProviderMapper),
	}
}

// Register adds a mapper to the registry
func (r *Registry) Register(m ProviderMapper) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.mappers[m.Provider()]; exists {
		return fmt.Errorf("mapper already registered: %s", m.Provider())
	}
	r.mappers[m.Provider()] = m
	return nil
}

// Get returns the mapper for a provider
func (r *Registry) Get(provider focus.Provider) (ProviderMapper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappers[provider]
	return m, ok
}

// All returns every registered mapper, ordered by provider name so that a
// multi-provider run dispatches deterministically
func (r *Registry) All() []ProviderMapper {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mappers := make([]ProviderMapper, 0, len(r.mappers))
	for _, m := range r.mappers {
		mappers = append(mappers, m)
	}
	sort.Slice(mappers, func(i, j int) bool {
		return mappers[i].Provider() < mappers[j].Provider()
	})
	return mappers
}

// SourceSystems returns the source_system identifiers of every registered
// mapper, ordered by provider name
func (r *Registry) SourceSystems() []string {
	all := r.All()
	systems := make([]string, 0, len(all))
	for _, m := range all {
		systems = append(systems, m.SourceSystem())
	}
	return systems
}
