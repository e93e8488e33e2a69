package hierarchy

import (
	"testing"
	"time"
)

func testEntities() []Entity {
	return []Entity{
		{EntityID: "ent-101", EntityName: "Platform", LevelCode: "TEAM", Path: "ent-1/ent-10/ent-101", PathNames: "Acme/Engineering/Platform"},
		{EntityID: "ent-102", EntityName: "Payments", LevelCode: "TEAM", Path: "ent-1/ent-10/ent-102", PathNames: "Acme/Engineering/Payments"},
		{EntityID: "ent-10", EntityName: "Engineering", LevelCode: "BU", Path: "ent-1/ent-10", PathNames: "Acme/Engineering"},
	}
}

func TestResolveByID(t *testing.T) {
	r := NewResolver(testEntities())

	e := r.Resolve([]string{"ent-102"})
	if e == nil {
		t.Fatal("expected a match for ent-102")
	}
	if e.EntityName != "Payments" {
		t.Errorf("EntityName = %q, want Payments", e.EntityName)
	}
}

func TestResolveByNameCaseInsensitive(t *testing.T) {
	r := NewResolver(testEntities())

	for _, candidate := range []string{"Platform", "platform", "PLATFORM"} {
		e := r.Resolve([]string{candidate})
		if e == nil {
			t.Fatalf("expected a match for %q", candidate)
		}
		if e.EntityID != "ent-101" {
			t.Errorf("Resolve(%q).EntityID = %q, want ent-101", candidate, e.EntityID)
		}
	}
}

func TestResolveCandidatePrecedence(t *testing.T) {
	r := NewResolver(testEntities())

	// First candidate that resolves wins, even when later candidates would
	// also match.
	e := r.Resolve([]string{"no-such-entity", "payments", "ent-101"})
	if e == nil {
		t.Fatal("expected a match")
	}
	if e.EntityID != "ent-102" {
		t.Errorf("EntityID = %q, want ent-102", e.EntityID)
	}
}

func TestResolveNoMatchReturnsNil(t *testing.T) {
	r := NewResolver(testEntities())

	if e := r.Resolve([]string{"unknown", ""}); e != nil {
		t.Errorf("expected nil for unmatched candidates, got %+v", e)
	}
	if e := r.Resolve(nil); e != nil {
		t.Errorf("expected nil for no candidates, got %+v", e)
	}
}

func TestResolverDuplicateFirstWins(t *testing.T) {
	r := NewResolver([]Entity{
		{EntityID: "ent-1", EntityName: "Alpha", LevelCode: "BU", Path: "ent-1", PathNames: "Alpha"},
		{EntityID: "ent-1", EntityName: "Alpha Stale", LevelCode: "BU", Path: "ent-1", PathNames: "Alpha Stale"},
	})

	e := r.Resolve([]string{"ent-1"})
	if e == nil {
		t.Fatal("expected a match")
	}
	if e.EntityName != "Alpha" {
		t.Errorf("EntityName = %q, want Alpha (first indexed entity)", e.EntityName)
	}
}

func TestAttributionCopiesEveryField(t *testing.T) {
	e := testEntities()[0]
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	attr := e.Attribution(at)
	if attr.EntityID != e.EntityID || attr.EntityName != e.EntityName ||
		attr.LevelCode != e.LevelCode || attr.Path != e.Path || attr.PathNames != e.PathNames {
		t.Errorf("attribution fields do not match entity: %+v", attr)
	}
	if !attr.ValidatedAt.Equal(at) {
		t.Errorf("ValidatedAt = %v, want %v", attr.ValidatedAt, at)
	}
}
