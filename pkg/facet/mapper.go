package facet

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type FacetOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int64  `json:"count"`
	Selected bool   `json:"selected"`
}

// OptionMapper orders the options of a select facet. Implementations must
// not modify the slice they are given.
type OptionMapper interface {
	Map(options []FacetOption) []FacetOption
}

type OptionMapperFunc func(options []FacetOption) []FacetOption

func (f OptionMapperFunc) Map(options []FacetOption) []FacetOption {
	return f(slices.Clone(options))
}

// InsertionOrderMapper keeps the order the search index returned.
type InsertionOrderMapper struct{}

func (InsertionOrderMapper) Map(options []FacetOption) []FacetOption {
	return slices.Clone(options)
}

// AlphabeticalMapper sorts by label, case insensitive, with the value as
// tie breaker. Category options carry ids as values, so the label is what
// the user reads.
type AlphabeticalMapper struct{}

func (AlphabeticalMapper) Map(options []FacetOption) []FacetOption {
	ret := slices.Clone(options)
	slices.SortStableFunc(ret, func(a, b FacetOption) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label)),
			cmp.Compare(a.Value, b.Value),
		)
	})
	return ret
}

// CountMapper puts the options with most hits first.
type CountMapper struct{}

func (CountMapper) Map(options []FacetOption) []FacetOption {
	ret := slices.Clone(options)
	slices.SortStableFunc(ret, func(a, b FacetOption) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return ret
}

func MapperByName(name string) (OptionMapper, error) {
	switch strings.ToLower(name) {
	case "", "insertion":
		return InsertionOrderMapper{}, nil
	case "alphabetical", "alpha":
		return AlphabeticalMapper{}, nil
	case "count":
		return CountMapper{}, nil
	}
	return nil, fmt.Errorf("facet: unknown option mapper %q", name)
}
