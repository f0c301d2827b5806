package facet

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matst80/slask-storefront/pkg/category"
	"github.com/matst80/slask-storefront/pkg/storefront"
)

var ErrUnsupportedFacetType = errors.New("facet: unsupported facet type")

// SelectorFactory creates the selector of one facet for the current request.
type SelectorFactory struct {
	config         Config
	userContext    *storefront.UserContext
	requestContext *storefront.RequestContext
	categories     *category.Tree
	supportedTypes []FacetType
}

// NewSelectorFactory takes the types the caller can render; an empty list accepts all.
func NewSelectorFactory(config Config, userContext *storefront.UserContext, requestContext *storefront.RequestContext, categories *category.Tree, supportedTypes []FacetType) *SelectorFactory {
	if categories == nil {
		categories = category.Empty()
	}
	return &SelectorFactory{
		config:         config,
		userContext:    userContext,
		requestContext: requestContext,
		categories:     categories,
		supportedTypes: supportedTypes,
	}
}

func (f *SelectorFactory) Create() (*Selector, error) {
	if len(f.supportedTypes) > 0 && !slices.Contains(f.supportedTypes, f.config.Type()) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedFacetType, f.config.Type(), f.config.Key())
	}
	path := ResolvePath(f.config.AttributePath(), f.userContext.LocaleString())
	selected := SelectedValues(f.requestContext.Query(), f.config.Key())

	matchValues := selected
	var label func(string) string
	if f.config.Type() == CategoryType {
		matchValues = f.categoryIds(selected)
		label = f.categoryName
	}
	expression := BuildExpression(f.config, matchValues, path)
	return newSelector(f.config, expression, selected, matchValues, label), nil
}

// categoryIds accepts ids or slugs in the user locale, unknown values are dropped.
func (f *SelectorFactory) categoryIds(selected []string) []string {
	ids := make([]string, 0, len(selected))
	for _, v := range selected {
		if c, ok := f.categories.ById(v); ok {
			ids = append(ids, c.Id)
		} else if c, ok := f.categories.BySlug(v, f.userContext.Locale); ok {
			ids = append(ids, c.Id)
		}
	}
	return ids
}

func (f *SelectorFactory) categoryName(id string) string {
	c, ok := f.categories.ById(id)
	if !ok {
		return id
	}
	return c.Name.Find(f.userContext.Locales()...)
}

// CreateSelectors runs a factory per config, in config order.
func CreateSelectors(configs []Config, userContext *storefront.UserContext, requestContext *storefront.RequestContext, categories *category.Tree, supportedTypes []FacetType) ([]*Selector, error) {
	ret := make([]*Selector, 0, len(configs))
	for _, c := range configs {
		s, err := NewSelectorFactory(c, userContext, requestContext, categories, supportedTypes).Create()
		if err != nil {
			return nil, err
		}
		ret = append(ret, s)
	}
	return ret, nil
}
