package facet

import (
	"slices"
	"strconv"
	"strings"
)

// FacetExpression declares the attribute the index should compute buckets for.
type FacetExpression string

func (e FacetExpression) Expression() string { return string(e) }

// FilterExpression restricts the results, all filters of a search are ANDed.
type FilterExpression string

func (e FilterExpression) Expression() string { return string(e) }

// FacetedSearchExpression is what one facet contributes to the search request.
type FacetedSearchExpression struct {
	facet   FacetExpression
	filters []FilterExpression
}

func NewFacetedSearchExpression(facet FacetExpression, filters ...FilterExpression) FacetedSearchExpression {
	f := make([]FilterExpression, len(filters))
	copy(f, filters)
	return FacetedSearchExpression{facet: facet, filters: f}
}

func (e FacetedSearchExpression) FacetExpression() FacetExpression {
	return e.facet
}

func (e FacetedSearchExpression) FilterExpressions() []FilterExpression {
	if e.filters == nil {
		return []FilterExpression{}
	}
	return slices.Clone(e.filters)
}

// Filters returns the filter expressions as strings.
func (e FacetedSearchExpression) Filters() []string {
	ret := make([]string, len(e.filters))
	for i, f := range e.filters {
		ret[i] = string(f)
	}
	return ret
}

// BuildExpression turns the selection of a facet into its facet and filter
// expressions on the resolved path. It depends on nothing but its arguments.
func BuildExpression(config Config, selected []string, path string) FacetedSearchExpression {
	switch config.Type() {
	case RangeType:
		return buildRangeExpression(config, selected, path)
	case ToggleType:
		return buildToggleExpression(selected, path)
	default:
		return buildTermExpression(config, selected, path)
	}
}

var valueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(value string) string {
	return `"` + valueEscaper.Replace(value) + `"`
}

// Matching all gives one filter per value, matching any a single filter
// with the values comma separated, e.g. attr:"foo","bar".
func buildTermExpression(config Config, selected []string, path string) FacetedSearchExpression {
	facet := FacetExpression(path)
	if len(selected) == 0 {
		return NewFacetedSearchExpression(facet)
	}
	if config.MatchingAll() {
		filters := make([]FilterExpression, 0, len(selected))
		for _, v := range selected {
			filters = append(filters, FilterExpression(path+":"+quote(v)))
		}
		return NewFacetedSearchExpression(facet, filters...)
	}
	quoted := make([]string, len(selected))
	for i, v := range selected {
		quoted[i] = quote(v)
	}
	return NewFacetedSearchExpression(facet, FilterExpression(path+":"+strings.Join(quoted, ",")))
}

func rangeFacetExpression(path string) FacetExpression {
	return FacetExpression(path + ":range(0 to *)")
}

func buildRangeExpression(config Config, selected []string, path string) FacetedSearchExpression {
	facet := rangeFacetExpression(path)
	ranges := ParseRanges(selected)
	if len(ranges) == 0 {
		return NewFacetedSearchExpression(facet)
	}
	if config.MatchingAll() {
		filters := make([]FilterExpression, 0, len(ranges))
		for _, r := range ranges {
			filters = append(filters, FilterExpression(path+":range "+r.expression()))
		}
		return NewFacetedSearchExpression(facet, filters...)
	}
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.expression()
	}
	return NewFacetedSearchExpression(facet, FilterExpression(path+":range "+strings.Join(parts, ", ")))
}

// toggleOn reports whether the first selected value that reads as a boolean
// is true. An off toggle does not filter.
func toggleOn(selected []string) bool {
	for _, v := range selected {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return false
}

func buildToggleExpression(selected []string, path string) FacetedSearchExpression {
	facet := FacetExpression(path)
	if !toggleOn(selected) {
		return NewFacetedSearchExpression(facet)
	}
	return NewFacetedSearchExpression(facet, FilterExpression(path+":true"))
}
