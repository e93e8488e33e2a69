// Package mapper - Service categorization rule tables
package mapper

import (
	"strings"

	"cloudcost/core/focus"
)

// CategoryRule maps a provider taxonomy value to a canonical service
// category. Match values are compared lowercase; substring matching unless
// Exact is set.
type CategoryRule struct {
	Match    string
	Exact    bool
	Category focus.ServiceCategory
}

// CategoryTable is an ordered rule list for one provider. First matching
// rule wins; no match falls to Other.
type CategoryTable struct {
	rules []CategoryRule
}

// NewCategoryTable builds a table from built-in rules
func NewCategoryTable(rules []CategoryRule) *CategoryTable {
	normalized := make([]CategoryRule, len(rules))
	for i, r := range rules {
		r.Match = strings.ToLower(r.Match)
		normalized[i] = r
	}
	return &CategoryTable{rules: normalized}
}

// Prepend inserts override rules ahead of the built-ins so operators can
// re-bucket a service without a redeploy
func (t *CategoryTable) Prepend(rules []CategoryRule) {
	normalized := make([]CategoryRule, len(rules))
	for i, r := range rules {
		r.Match = strings.ToLower(r.Match)
		normalized[i] = r
	}
	t.rules = append(normalized, t.rules...)
}

// Categorize returns the category of the first rule matching any of the
// given provider taxonomy values (service id, product family, meter
// category and the like)
func (t *CategoryTable) Categorize(values ...string) focus.ServiceCategory {
	lowered := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			lowered = append(lowered, strings.ToLower(v))
		}
	}
	for _, rule := range t.rules {
		for _, v := range lowered {
			if rule.Exact {
				if v == rule.Match {
					return rule.Category
				}
			} else if strings.Contains(v, rule.Match) {
				return rule.Category
			}
		}
	}
	return focus.CategoryOther
}
