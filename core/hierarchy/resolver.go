// Package hierarchy resolves free-form resource tags to validated
// organizational entities. The hierarchy table is maintained and validated by
// an external service; this package only reads it and never mutates entities.
package hierarchy

import (
	"strings"
	"time"

	"cloudcost/core/focus"
)

// Entity is one node of an organization's cost-allocation tree
type Entity struct {
	// EntityID is the stable entity identifier
	EntityID string

	// EntityName is the display name
	EntityName string

	// LevelCode identifies the tree level (e.g. "BU", "TEAM")
	LevelCode string

	// Path is the id-based ancestor chain
	Path string

	// PathNames is the human-readable ancestor chain
	PathNames string
}

// Attribution converts a matched entity into canonical hierarchy fields,
// stamping the validation time. Only called on a match - unmatched rows keep
// every hierarchy field null.
func (e Entity) Attribution(validatedAt time.Time) *focus.HierarchyAttribution {
	return &focus.HierarchyAttribution{
		EntityID:    e.EntityID,
		EntityName:  e.EntityName,
		LevelCode:   e.LevelCode,
		Path:        e.Path,
		PathNames:   e.PathNames,
		ValidatedAt: validatedAt.UTC(),
	}
}

// Resolver matches candidate identifier values against the currently-valid
// entities of one organization. It is built once per run from a snapshot of
// the hierarchy table and is pure afterwards.
type Resolver struct {
	byID   map[string]Entity
	byName map[string]Entity
}

// NewResolver indexes the valid entities of one organization. Candidates are
// matched on entity id first, then case-insensitively on entity name.
func NewResolver(entities []Entity) *Resolver {
	r := &Resolver{
		byID:   make(map[string]Entity, len(entities)),
		byName: make(map[string]Entity, len(entities)),
	}
	for _, e := range entities {
		if e.EntityID != "" {
			if _, dup := r.byID[e.EntityID]; !dup {
				r.byID[e.EntityID] = e
			}
		}
		name := strings.ToLower(e.EntityName)
		if name != "" {
			if _, dup := r.byName[name]; !dup {
				r.byName[name] = e
			}
		}
	}
	return r
}

// Resolve returns the entity matching the first candidate that resolves, or
// nil when nothing matches. A nil result is not an error: the row is
// deliberately attributed to nothing.
func (r *Resolver) Resolve(candidates []string) *Entity {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if e, ok := r.byID[c]; ok {
			return &e
		}
		if e, ok := r.byName[strings.ToLower(c)]; ok {
			return &e
		}
	}
	return nil
}

// Size returns the number of indexed entities
func (r *Resolver) Size() int {
	return len(r.byID)
}
