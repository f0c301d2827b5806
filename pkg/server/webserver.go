package server

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/matst80/slask-storefront/pkg/category"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/facet"
	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noSearches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_searches_total",
		Help: "The total number of processed product searches",
	})
	searchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_search_errors_total",
		Help: "The total number of failed product searches",
	})
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_search_duration_seconds",
		Help:    "Time spent building, executing and rendering a search",
		Buckets: prometheus.DefBuckets,
	})
	productViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_product_views_total",
		Help: "The total number of product detail requests",
	})
)

// ProductFinder looks up single products.
type ProductFinder interface {
	ProductBySlug(ctx context.Context, slug, locale string) (*sdk.ProductProjection, error)
}

type WebServer struct {
	Searcher       sdk.Searcher
	Products       ProductFinder
	Facets         []facet.Config
	Locales        *storefront.LocaleResolver
	Tracking       tracking.Tracking
	SupportedTypes []facet.FacetType
	Attributes     []view.AttributeLabel
	categories     atomic.Pointer[category.Tree]
}

// Categories returns the current category tree, never nil.
func (ws *WebServer) Categories() *category.Tree {
	if t := ws.categories.Load(); t != nil {
		return t
	}
	return category.Empty()
}

// SetCategories swaps the tree used by requests started afterwards.
func (ws *WebServer) SetCategories(tree *category.Tree) {
	ws.categories.Store(tree)
}

func (ws *WebServer) Handler() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/search", common.JsonHandler(ws.Tracking, ws.Search))
	mux.HandleFunc("GET /api/products/{slug}", common.JsonHandler(ws.Tracking, ws.Product))
	mux.HandleFunc("GET /api/categories", common.JsonHandler(ws.Tracking, ws.CategoryList))
	mux.HandleFunc("GET /api/facet-list", common.JsonHandler(ws.Tracking, ws.FacetList))
	return mux
}
