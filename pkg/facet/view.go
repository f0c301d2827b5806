package facet

import "slices"

// Facet is the render ready view of one facet. The variants are
// *SelectFacet, *RangeFacet and *ToggleFacet.
type Facet interface {
	Key() string
	Label() string
	Type() FacetType
	CountHidden() bool
	// Available reports whether the facet has enough data to be shown.
	Available() bool
	isFacet()
}

type facetBase struct {
	config Config
}

func (f *facetBase) Key() string       { return f.config.Key() }
func (f *facetBase) Label() string     { return f.config.Label() }
func (f *facetBase) Type() FacetType   { return f.config.Type() }
func (f *facetBase) CountHidden() bool { return f.config.CountHidden() }
func (f *facetBase) MatchingAll() bool { return f.config.MatchingAll() }
func (f *facetBase) MultiSelect() bool { return f.config.MultiSelect() }
func (f *facetBase) isFacet()          {}

// SelectFacet lists term options, used for list and category facets.
type SelectFacet struct {
	facetBase
	selected []string
	options  []FacetOption
}

func (f *SelectFacet) Limit() int64         { return f.config.Limit() }
func (f *SelectFacet) Threshold() int64     { return f.config.Threshold() }
func (f *SelectFacet) Mapper() OptionMapper { return f.config.Mapper() }

// SelectedValues are the values from the request, in request order.
func (f *SelectFacet) SelectedValues() []string {
	return slices.Clone(f.selected)
}

// Options are all options in mapper order.
func (f *SelectFacet) Options() []FacetOption {
	return slices.Clone(f.options)
}

// LimitedOptions are the options to display, at most Limit of them.
func (f *SelectFacet) LimitedOptions() []FacetOption {
	limit := f.config.Limit()
	if limit <= 0 || int64(len(f.options)) <= limit {
		return f.Options()
	}
	return slices.Clone(f.options[:limit])
}

func (f *SelectFacet) Available() bool {
	var withHits int64
	for _, o := range f.options {
		if o.Count > 0 {
			withHits++
		}
	}
	return withHits > 0 && withHits >= f.config.Threshold()
}

// RangeFacet exposes the value bounds of the current result.
type RangeFacet struct {
	facetBase
	selected []Range
	min      float64
	max      float64
	count    int64
}

func (f *RangeFacet) Min() float64   { return f.min }
func (f *RangeFacet) Max() float64   { return f.max }
func (f *RangeFacet) Count() int64   { return f.count }
func (f *RangeFacet) Selected() bool { return len(f.selected) > 0 }

func (f *RangeFacet) SelectedRanges() []Range {
	return slices.Clone(f.selected)
}

func (f *RangeFacet) Available() bool {
	return f.count > 0 || f.Selected()
}

// ToggleFacet is a single on/off filter on a boolean attribute.
type ToggleFacet struct {
	facetBase
	selected bool
	count    int64
}

// Selected reports whether the toggle is on, i.e. true was requested.
func (f *ToggleFacet) Selected() bool { return f.selected }

// Count is the number of hits having the attribute set to true.
func (f *ToggleFacet) Count() int64 { return f.count }

func (f *ToggleFacet) Available() bool {
	return f.count > 0 || f.selected
}
