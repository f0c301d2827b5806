package server

import (
	"net/url"
	"strings"

	"github.com/gorilla/schema"
)

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
	// MaxOffset is the deepest offset the product search accepts.
	MaxOffset = 10000
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// SearchRequest holds the paging, sort and text parameters of the overview.
// Facet selections live in the same query string and are read by the selectors.
type SearchRequest struct {
	Query    string `json:"q" schema:"q"`
	Page     int    `json:"page" schema:"page"`
	PageSize int    `json:"size" schema:"size,default:24"`
	Sort     string `json:"sort" schema:"sort"`
}

// sortOrders maps the public sort names to platform sort expressions.
var sortOrders = map[string]string{
	"price-asc":  "price asc",
	"price-desc": "price desc",
	"name-asc":   "name.{{locale}} asc",
	"name-desc":  "name.{{locale}} desc",
	"new":        "createdAt desc",
}

func DecodeSearchRequest(query url.Values) (*SearchRequest, error) {
	sr := &SearchRequest{}
	if err := decoder.Decode(sr, query); err != nil {
		return nil, err
	}
	sr.Sanitize()
	return sr, nil
}

func (s *SearchRequest) Sanitize() {
	s.Query = strings.TrimSpace(s.Query)
	if s.Page < 0 {
		s.Page = 0
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	if s.Page > MaxOffset/s.PageSize {
		s.Page = MaxOffset / s.PageSize
	}
	if _, ok := sortOrders[s.Sort]; !ok {
		s.Sort = ""
	}
}

func (s *SearchRequest) Offset() int {
	return s.Page * s.PageSize
}

// SortExpression is the platform sort for the request, empty for relevance.
func (s *SearchRequest) SortExpression(locale string) string {
	order, ok := sortOrders[s.Sort]
	if !ok {
		return ""
	}
	return strings.ReplaceAll(order, "{{locale}}", locale)
}
