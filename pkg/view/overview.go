package view

import (
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/storefront"
)

type PaginationBean struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	Total      int64 `json:"total"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

func NewPaginationBean(result *sdk.PagedSearchResult, page, pageSize int) PaginationBean {
	pages := result.Pages(pageSize)
	return PaginationBean{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
		Total:      result.Total,
		HasNext:    page+1 < pages,
		HasPrev:    page > 0,
	}
}

type ProductOverviewBean struct {
	SearchTerm string                 `json:"searchTerm,omitempty"`
	Locale     string                 `json:"locale"`
	Products   []ProductThumbnailBean `json:"products"`
	Facets     []FacetBean            `json:"facets"`
	Pagination PaginationBean         `json:"pagination"`
}

// NewProductOverviewBean renders the result page; facets that are not
// available are left out.
func NewProductOverviewBean(result *sdk.PagedSearchResult, facets []facet.Facet, searchTerm string, page, pageSize int, userContext *storefront.UserContext) ProductOverviewBean {
	products := make([]ProductThumbnailBean, len(result.Results))
	for i := range result.Results {
		products[i] = NewProductThumbnailBean(&result.Results[i], userContext)
	}
	facetBeans := make([]FacetBean, 0, len(facets))
	for _, f := range facets {
		if !f.Available() {
			continue
		}
		facetBeans = append(facetBeans, NewFacetBean(f))
	}
	return ProductOverviewBean{
		SearchTerm: searchTerm,
		Locale:     userContext.LocaleString(),
		Products:   products,
		Facets:     facetBeans,
		Pagination: NewPaginationBean(result, page, pageSize),
	}
}
