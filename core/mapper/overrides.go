// Package mapper - HCL category rule overrides
package mapper

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"cloudcost/core/focus"
	"cloudcost/internal/errors"
)

// Overrides file shape:
//
//	provider "aws" {
//	  rule {
//	    match    = "quicksight"
//	    category = "AI-ML"
//	  }
//	}
type overridesFile struct {
	Providers []providerOverride `hcl:"provider,block"`
}

type providerOverride struct {
	Name  string         `hcl:"name,label"`
	Rules []overrideRule `hcl:"rule,block"`
}

type overrideRule struct {
	Match    string `hcl:"match"`
	Category string `hcl:"category"`
	Exact    bool   `hcl:"exact,optional"`
}

// LoadOverrides parses an HCL rules file into per-provider rule lists.
// Validation is strict: an unknown provider label or category value fails the
// whole file, at startup rather than mid-run.
func LoadOverrides(path string) (map[focus.Provider][]CategoryRule, error) {
	if path == "" {
		return nil, nil
	}

	var file overridesFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Config("parsing category overrides", err)
	}

	out := make(map[focus.Provider][]CategoryRule)
	for _, p := range file.Providers {
		provider := focus.Provider(p.Name)
		if !provider.IsValid() {
			return nil, errors.Newf(errors.TypeConfig, "category overrides: unknown provider %q", p.Name)
		}
		for _, r := range p.Rules {
			category := focus.ServiceCategory(r.Category)
			if !category.IsValid() {
				return nil, errors.Newf(errors.TypeConfig, "category overrides: unknown category %q for provider %q", r.Category, p.Name)
			}
			if r.Match == "" {
				return nil, errors.Newf(errors.TypeConfig, "category overrides: empty match for provider %q", p.Name)
			}
			out[provider] = append(out[provider], CategoryRule{
				Match:    r.Match,
				Exact:    r.Exact,
				Category: category,
			})
		}
	}
	return out, nil
}
