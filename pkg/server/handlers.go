package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/view"
)

func newSearchRequest(sr *SearchRequest, uc *storefront.UserContext, selectors []*facet.Selector) *sdk.ProductSearchRequest {
	req := &sdk.ProductSearchRequest{
		Text:                 sr.Query,
		Locale:               uc.LocaleString(),
		Fuzzy:                sr.Query != "",
		Limit:                sr.PageSize,
		Offset:               sr.Offset(),
		Currency:             uc.Currency,
		Country:              uc.Country,
		MarkMatchingVariants: true,
	}
	if sort := sr.SortExpression(uc.LocaleString()); sort != "" {
		req.Sort = []string{sort}
	}
	for _, s := range selectors {
		expr := s.FacetedSearchExpression()
		req.AddFacetedSearch(expr.FacetExpression().Expression(), expr.Filters()...)
	}
	return req
}

func selectedValues(selectors []*facet.Selector) map[string][]string {
	ret := make(map[string][]string)
	for _, s := range selectors {
		if values := s.SelectedValues(); len(values) > 0 {
			ret[s.Config().Key()] = values
		}
	}
	return ret
}

// Search renders the product overview: the facet selectors shape the search,
// the executed result is bound back to them to render the facets.
func (ws *WebServer) Search(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error {
	start := time.Now()
	sr, err := DecodeSearchRequest(r.URL.Query())
	if err != nil {
		return common.NewStatusError(http.StatusBadRequest, err)
	}
	uc := ws.Locales.UserContext(r)
	rc := storefront.RequestContextFromRequest(r)

	selectors, err := facet.CreateSelectors(ws.Facets, uc, rc, ws.Categories(), ws.SupportedTypes)
	if err != nil {
		return err
	}
	req := newSearchRequest(sr, uc, selectors)
	result, err := ws.Searcher.SearchProducts(r.Context(), req)
	if err != nil {
		searchErrors.Inc()
		return common.NewStatusError(http.StatusBadGateway, fmt.Errorf("search products: %w", err))
	}

	facets := make([]facet.Facet, 0, len(selectors))
	for _, s := range selectors {
		f, err := s.Bind(result).Facet()
		if err != nil {
			return err
		}
		facets = append(facets, f)
	}

	if ws.Tracking != nil {
		ws.Tracking.TrackSearch(sessionId, tracking.SearchEvent{
			Query:           sr.Query,
			Selected:        selectedValues(selectors),
			Filters:         req.Filters,
			NumberOfResults: result.Total,
			Page:            sr.Page,
			Locale:          uc.LocaleString(),
		}, r)
	}
	bean := view.NewProductOverviewBean(result, facets, sr.Query, sr.Page, sr.PageSize, uc)
	noSearches.Inc()
	searchDuration.Observe(time.Since(start).Seconds())

	common.PublicCache(w, 60)
	return enc.Encode(bean)
}

func (ws *WebServer) breadcrumb(p *sdk.ProductProjection, uc *storefront.UserContext) []view.LinkBean {
	if len(p.Categories) == 0 {
		return nil
	}
	tree := ws.Categories()
	c, ok := tree.ById(p.Categories[0].Id)
	if !ok {
		return nil
	}
	path := append(tree.Ancestors(c.Id), c)
	ret := make([]view.LinkBean, 0, len(path))
	for _, c := range path {
		ret = append(ret, view.LinkBean{
			Text: c.Name.Find(uc.Locales()...),
			Url:  fmt.Sprintf("/%s/%s/", uc.LocaleString(), c.Slug.Find(uc.Locales()...)),
		})
	}
	return ret
}

func (ws *WebServer) Product(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error {
	productViews.Inc()
	uc := ws.Locales.UserContext(r)
	p, err := ws.Products.ProductBySlug(r.Context(), r.PathValue("slug"), uc.LocaleString())
	if errors.Is(err, sdk.ErrNotFound) {
		return common.NewStatusError(http.StatusNotFound, err)
	}
	if err != nil {
		return common.NewStatusError(http.StatusBadGateway, fmt.Errorf("product by slug: %w", err))
	}
	common.PublicCache(w, 300)
	return enc.Encode(view.NewProductBean(p, ws.Attributes, ws.breadcrumb(p, uc), uc))
}

type CategoryBean struct {
	Id       string         `json:"id"`
	Name     string         `json:"name"`
	Slug     string         `json:"slug"`
	Children []CategoryBean `json:"children,omitempty"`
}

func (ws *WebServer) categoryBeans(ids []string, uc *storefront.UserContext) []CategoryBean {
	tree := ws.Categories()
	ret := make([]CategoryBean, 0, len(ids))
	for _, id := range ids {
		c, ok := tree.ById(id)
		if !ok {
			continue
		}
		children := tree.Children(id)
		childIds := make([]string, len(children))
		for i, child := range children {
			childIds[i] = child.Id
		}
		ret = append(ret, CategoryBean{
			Id:       c.Id,
			Name:     c.Name.Find(uc.Locales()...),
			Slug:     c.Slug.Find(uc.Locales()...),
			Children: ws.categoryBeans(childIds, uc),
		})
	}
	return ret
}

// CategoryList renders the whole category tree for navigation.
func (ws *WebServer) CategoryList(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error {
	uc := ws.Locales.UserContext(r)
	roots := ws.Categories().Roots()
	ids := make([]string, len(roots))
	for i, c := range roots {
		ids[i] = c.Id
	}
	common.PublicCache(w, 600)
	return enc.Encode(ws.categoryBeans(ids, uc))
}

type FacetConfigBean struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Type        facet.FacetType `json:"type"`
	MultiSelect bool            `json:"multiSelect"`
	MatchingAll bool            `json:"matchingAll"`
}

// FacetList lists the configured facets so clients know which query keys exist.
func (ws *WebServer) FacetList(w http.ResponseWriter, r *http.Request, sessionId int, enc jsoncompat.Encoder) error {
	ret := make([]FacetConfigBean, len(ws.Facets))
	for i, c := range ws.Facets {
		ret[i] = FacetConfigBean{
			Key:         c.Key(),
			Label:       c.Label(),
			Type:        c.Type(),
			MultiSelect: c.MultiSelect(),
			MatchingAll: c.MatchingAll(),
		}
	}
	common.PublicCache(w, 600)
	return enc.Encode(ret)
}
