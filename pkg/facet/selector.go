package facet

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/matst80/slask-storefront/pkg/sdk"
)

var ErrSearchNotExecuted = errors.New("facet: selector has no search result bound")

type facetState struct {
	once  sync.Once
	facet Facet
}

// Selector binds the expression of one facet to the search result it was
// executed with. Build the search from FacetedSearchExpression, execute it
// and Bind the result before asking for the Facet.
type Selector struct {
	config      Config
	expression  FacetedSearchExpression
	selected    []string
	matchValues []string
	label       func(value string) string
	result      *sdk.PagedSearchResult
	state       *facetState
}

func newSelector(config Config, expression FacetedSearchExpression, selected, matchValues []string, label func(string) string) *Selector {
	if label == nil {
		label = func(value string) string { return value }
	}
	return &Selector{
		config:      config,
		expression:  expression,
		selected:    selected,
		matchValues: matchValues,
		label:       label,
		state:       &facetState{},
	}
}

func (s *Selector) Config() Config {
	return s.config
}

func (s *Selector) FacetedSearchExpression() FacetedSearchExpression {
	return s.expression
}

func (s *Selector) SelectedValues() []string {
	return slices.Clone(s.selected)
}

// Bind returns a selector for the executed search result, s is left unbound.
func (s *Selector) Bind(result *sdk.PagedSearchResult) *Selector {
	bound := *s
	bound.result = result
	bound.state = &facetState{}
	return &bound
}

func (s *Selector) Bound() bool {
	return s.result != nil
}

// Facet builds the view on first call and returns the same value afterwards.
func (s *Selector) Facet() (Facet, error) {
	if s.result == nil {
		return nil, ErrSearchNotExecuted
	}
	s.state.once.Do(func() {
		s.state.facet = s.buildFacet()
	})
	return s.state.facet, nil
}

func (s *Selector) buildFacet() Facet {
	buckets, _ := s.result.Facet(s.expression.FacetExpression().Expression())
	base := facetBase{config: s.config}
	switch s.config.Type() {
	case RangeType:
		return s.buildRangeFacet(base, buckets)
	case ToggleType:
		return s.buildToggleFacet(base, buckets)
	default:
		return s.buildSelectFacet(base, buckets)
	}
}

func (s *Selector) buildSelectFacet(base facetBase, buckets sdk.FacetResult) *SelectFacet {
	options := make([]FacetOption, 0, len(buckets.Terms)+len(s.matchValues))
	seen := make(map[string]struct{}, len(buckets.Terms))
	for _, term := range buckets.Terms {
		if _, dup := seen[term.Term]; dup {
			continue
		}
		seen[term.Term] = struct{}{}
		options = append(options, FacetOption{
			Value:    term.Term,
			Label:    s.label(term.Term),
			Count:    term.Count,
			Selected: slices.Contains(s.matchValues, term.Term),
		})
	}
	// keep selections without hits so they can be deselected
	for _, v := range s.matchValues {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		options = append(options, FacetOption{Value: v, Label: s.label(v), Selected: true})
	}
	return &SelectFacet{
		facetBase: base,
		selected:  slices.Clone(s.selected),
		options:   s.config.Mapper().Map(options),
	}
}

func (s *Selector) buildRangeFacet(base facetBase, buckets sdk.FacetResult) *RangeFacet {
	f := &RangeFacet{facetBase: base, selected: ParseRanges(s.selected)}
	for _, r := range buckets.Ranges {
		if r.Count == 0 {
			continue
		}
		if f.count == 0 {
			f.min, f.max = r.Min, r.Max
		} else {
			f.min = min(f.min, r.Min)
			f.max = max(f.max, r.Max)
		}
		f.count += r.Count
	}
	return f
}

func isTrueTerm(term string) bool {
	return term == "T" || strings.EqualFold(term, "true")
}

func (s *Selector) buildToggleFacet(base facetBase, buckets sdk.FacetResult) *ToggleFacet {
	f := &ToggleFacet{facetBase: base}
	f.selected = toggleOn(s.selected)
	for _, term := range buckets.Terms {
		if isTrueTerm(term.Term) {
			f.count += term.Count
		}
	}
	return f
}
