package sdk

import (
	"net/url"
	"strconv"
)

// ProductSearchRequest is a product projection search against the platform index.
type ProductSearchRequest struct {
	Text                 string
	Locale               string
	Fuzzy                bool
	Facets               []string
	Filters              []string
	FilterQuery          []string
	FilterFacets         []string
	Sort                 []string
	Limit                int
	Offset               int
	Currency             string
	Country              string
	Staged               bool
	MarkMatchingVariants bool
}

// AddFacetedSearch adds a facet and the filters restricting the results to its selection.
// Filters only narrow the results so the facet keeps counting every option.
func (r *ProductSearchRequest) AddFacetedSearch(facet string, filters ...string) {
	r.Facets = append(r.Facets, facet)
	r.Filters = append(r.Filters, filters...)
}

// Values encodes the request as query parameters of the search endpoint.
func (r *ProductSearchRequest) Values() url.Values {
	v := url.Values{}
	if r.Text != "" && r.Locale != "" {
		v.Set("text."+r.Locale, r.Text)
		if r.Fuzzy {
			v.Set("fuzzy", "true")
		}
	}
	for _, f := range r.Facets {
		v.Add("facet", f)
	}
	for _, f := range r.Filters {
		v.Add("filter", f)
	}
	for _, f := range r.FilterQuery {
		v.Add("filter.query", f)
	}
	for _, f := range r.FilterFacets {
		v.Add("filter.facets", f)
	}
	for _, s := range r.Sort {
		v.Add("sort", s)
	}
	if r.Limit > 0 {
		v.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Offset > 0 {
		v.Set("offset", strconv.Itoa(r.Offset))
	}
	if r.Currency != "" {
		v.Set("priceCurrency", r.Currency)
		if r.Country != "" {
			v.Set("priceCountry", r.Country)
		}
	}
	v.Set("staged", strconv.FormatBool(r.Staged))
	if r.MarkMatchingVariants {
		v.Set("markMatchingVariants", "true")
	}
	return v
}

type TermStat struct {
	Term         string `json:"term"`
	Count        int64  `json:"count"`
	ProductCount int64  `json:"productCount,omitempty"`
}

type RangeStat struct {
	From         float64 `json:"from"`
	FromStr      string  `json:"fromStr"`
	To           float64 `json:"to"`
	ToStr        string  `json:"toStr"`
	Count        int64   `json:"count"`
	ProductCount int64   `json:"productCount,omitempty"`
	TotalCount   int64   `json:"totalCount"`
	Total        float64 `json:"total"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
}

// FacetResult is one facet bucket set, terms or ranges depending on Type.
type FacetResult struct {
	Type     string      `json:"type"`
	DataType string      `json:"dataType,omitempty"`
	Missing  int64       `json:"missing,omitempty"`
	Total    int64       `json:"total,omitempty"`
	Other    int64       `json:"other,omitempty"`
	Terms    []TermStat  `json:"terms,omitempty"`
	Ranges   []RangeStat `json:"ranges,omitempty"`
}

type PagedSearchResult struct {
	Offset  int64                  `json:"offset"`
	Limit   int64                  `json:"limit"`
	Count   int64                  `json:"count"`
	Total   int64                  `json:"total"`
	Results []ProductProjection    `json:"results"`
	Facets  map[string]FacetResult `json:"facets"`
}

// Facet returns the buckets for the facet expression, keyed as sent.
func (r *PagedSearchResult) Facet(expression string) (FacetResult, bool) {
	if r == nil || r.Facets == nil {
		return FacetResult{}, false
	}
	f, ok := r.Facets[expression]
	return f, ok
}

// Pages is the number of pages of the given size the total spans.
func (r *PagedSearchResult) Pages(size int) int {
	if size <= 0 || r.Total <= 0 {
		return 0
	}
	return int((r.Total + int64(size) - 1) / int64(size))
}
