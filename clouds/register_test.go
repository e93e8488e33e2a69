package clouds

import (
	"testing"

	"cloudcost/core/focus"
	"cloudcost/core/mapper"
)

func TestNewRegistryHoldsAllProviders(t *testing.T) {
	registry, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, provider := range []focus.Provider{focus.ProviderGCP, focus.ProviderAWS, focus.ProviderAzure, focus.ProviderOCI} {
		m, ok := registry.Get(provider)
		if !ok {
			t.Fatalf("no mapper registered for %s", provider)
		}
		if m.Provider() != provider {
			t.Errorf("mapper for %s reports provider %s", provider, m.Provider())
		}
		if m.SourceSystem() == "" || m.DateColumn() == "" {
			t.Errorf("mapper for %s has empty source system or date column", provider)
		}
	}
}

func TestRegistryDispatchOrderIsDeterministic(t *testing.T) {
	registry, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	want := []focus.Provider{focus.ProviderAWS, focus.ProviderAzure, focus.ProviderGCP, focus.ProviderOCI}
	all := registry.All()
	if len(all) != len(want) {
		t.Fatalf("All() returned %d mappers, want %d", len(all), len(want))
	}
	for i, m := range all {
		if m.Provider() != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, m.Provider(), want[i])
		}
	}
}

func TestCategoryOverridesReachMapper(t *testing.T) {
	overrides := map[focus.Provider][]mapper.CategoryRule{
		focus.ProviderGCP: {{Match: "somethingodd", Category: focus.CategoryAIML}},
	}
	registry, err := NewRegistry(overrides)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	m, _ := registry.Get(focus.ProviderGCP)
	raw := mapper.RawRecord{Columns: map[string]interface{}{
		"billing_account_id":  "BA-1",
		"service_description": "SomethingOdd API",
		"usage_start_time":    "2026-01-15T00:00:00Z",
		"usage_end_time":      "2026-01-15T01:00:00Z",
		"cost":                "1.00",
		"currency":            "USD",
	}}
	rec, err := m.MapRow(raw)
	if err != nil {
		t.Fatalf("MapRow: %v", err)
	}
	if rec.ServiceCategory != focus.CategoryAIML {
		t.Errorf("ServiceCategory = %q, want %q (override rule)", rec.ServiceCategory, focus.CategoryAIML)
	}
}
