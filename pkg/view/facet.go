package view

import (
	"fmt"

	"github.com/matst80/slask-storefront/pkg/facet"
)

type FacetOptionBean struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    *int64 `json:"count,omitempty"`
	Selected bool   `json:"selected"`
}

type RangeBean struct {
	Min      float64       `json:"min"`
	Max      float64       `json:"max"`
	Count    *int64        `json:"count,omitempty"`
	Selected []facet.Range `json:"selected,omitempty"`
}

type ToggleBean struct {
	Count    *int64 `json:"count,omitempty"`
	Selected bool   `json:"selected"`
}

// FacetBean is the template shape of a facet widget; exactly one of
// Options, Range and Toggle is set depending on Type.
type FacetBean struct {
	Key         string            `json:"key"`
	Label       string            `json:"label"`
	Type        facet.FacetType   `json:"type"`
	Available   bool              `json:"available"`
	MultiSelect bool              `json:"multiSelect,omitempty"`
	MatchingAll bool              `json:"matchingAll,omitempty"`
	Options     []FacetOptionBean `json:"options,omitempty"`
	Range       *RangeBean        `json:"range,omitempty"`
	Toggle      *ToggleBean       `json:"toggle,omitempty"`
}

func count(f facet.Facet, c int64) *int64 {
	if f.CountHidden() {
		return nil
	}
	return &c
}

func NewFacetBean(f facet.Facet) FacetBean {
	bean := FacetBean{
		Key:       f.Key(),
		Label:     f.Label(),
		Type:      f.Type(),
		Available: f.Available(),
	}
	switch v := f.(type) {
	case *facet.SelectFacet:
		bean.MultiSelect = v.MultiSelect()
		bean.MatchingAll = v.MatchingAll()
		options := v.LimitedOptions()
		bean.Options = make([]FacetOptionBean, len(options))
		for i, o := range options {
			bean.Options[i] = FacetOptionBean{
				Value:    o.Value,
				Label:    o.Label,
				Count:    count(f, o.Count),
				Selected: o.Selected,
			}
		}
	case *facet.RangeFacet:
		bean.Range = &RangeBean{
			Min:      v.Min(),
			Max:      v.Max(),
			Count:    count(f, v.Count()),
			Selected: v.SelectedRanges(),
		}
	case *facet.ToggleFacet:
		bean.Toggle = &ToggleBean{
			Count:    count(f, v.Count()),
			Selected: v.Selected(),
		}
	default:
		panic(fmt.Sprintf("view: unhandled facet variant %T", f))
	}
	return bean
}
