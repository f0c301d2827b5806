package facet

import (
	"errors"
	"net/url"
	"os"
	"testing"

	"github.com/matst80/slask-storefront/pkg/category"
	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const (
	testKey   = "key"
	testLabel = "Some Facet"
)

func facetBuilder(attrPath string) *ConfigBuilder {
	return NewConfigBuilder(testKey, attrPath).
		Label(testLabel).
		Type(ListType).
		CountHidden(true).
		MatchingAll(true).
		MultiSelect(false).
		Limit(3).
		Threshold(2)
}

func testUserContext() *storefront.UserContext {
	return storefront.NewUserContext(language.English, "DE", "EUR", language.German)
}

func createSelector(t *testing.T, config Config, selected []string) *Selector {
	t.Helper()
	query := url.Values{config.Key(): selected}
	requestContext := storefront.NewRequestContext(query, "")
	selector, err := NewSelectorFactory(config, testUserContext(), requestContext, category.Empty(), nil).Create()
	require.NoError(t, err)
	return selector
}

func searchResult(t *testing.T) *sdk.PagedSearchResult {
	t.Helper()
	data, err := os.ReadFile("testdata/pagedSearchResult.json")
	require.NoError(t, err)
	result := &sdk.PagedSearchResult{}
	require.NoError(t, jsoncompat.Unmarshal(data, result))
	return result
}

func filterStrings(e FacetedSearchExpression) []string {
	ret := []string{}
	for _, f := range e.FilterExpressions() {
		ret = append(ret, f.Expression())
	}
	return ret
}

func TestInitializesFacet(t *testing.T) {
	config := facetBuilder("foo.bar").Mapper(AlphabeticalMapper{}).MustBuild()
	selectedValues := []string{"foo", "bar"}
	selector := createSelector(t, config, selectedValues)

	facet, err := selector.Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	selectFacet, ok := facet.(*SelectFacet)
	require.True(t, ok, "expected *SelectFacet, got %T", facet)

	assert.Equal(t, ListType, selectFacet.Type(), "type")
	assert.Equal(t, testKey, selectFacet.Key(), "key")
	assert.Equal(t, testLabel, selectFacet.Label(), "label")
	assert.True(t, selectFacet.CountHidden(), "count hidden")
	assert.True(t, selectFacet.MatchingAll(), "matching all")
	assert.False(t, selectFacet.MultiSelect(), "multi select")
	assert.Equal(t, int64(3), selectFacet.Limit(), "limit")
	assert.Equal(t, int64(2), selectFacet.Threshold(), "threshold")
	assert.IsType(t, AlphabeticalMapper{}, selectFacet.Mapper(), "mapper")
	assert.Equal(t, selectedValues, selectFacet.SelectedValues(), "selected values")
}

func TestFacetOptionsAreMappedAndLimited(t *testing.T) {
	config := facetBuilder("foo.bar").Mapper(AlphabeticalMapper{}).MustBuild()
	facet, err := createSelector(t, config, []string{"foo", "bar"}).Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	selectFacet := facet.(*SelectFacet)

	values := []string{}
	for _, o := range selectFacet.Options() {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"Apple", "bar", "baz", "cherry", "foo"}, values)

	limited := selectFacet.LimitedOptions()
	require.Len(t, limited, 3)
	assert.Equal(t, FacetOption{Value: "bar", Label: "bar", Count: 0, Selected: true}, limited[1])
	assert.True(t, selectFacet.Available())
}

func TestGetsFacetedSearchExprWithSelectedValueMatchingAll(t *testing.T) {
	config := facetBuilder("attr").MustBuild()
	selector := createSelector(t, config, []string{"foo", "bar"})
	expr := selector.FacetedSearchExpression()
	assert.Equal(t, "attr", expr.FacetExpression().Expression())
	assert.Equal(t, []string{`attr:"foo"`, `attr:"bar"`}, filterStrings(expr))
}

func TestGetsFacetedSearchExprWithSelectedValueMatchingAny(t *testing.T) {
	config := facetBuilder("attr").MatchingAll(false).MustBuild()
	selector := createSelector(t, config, []string{"foo", "bar"})
	expr := selector.FacetedSearchExpression()
	assert.Equal(t, "attr", expr.FacetExpression().Expression())
	assert.Equal(t, []string{`attr:"foo","bar"`}, filterStrings(expr))
}

func TestGetsFacetedSearchExprWithLocale(t *testing.T) {
	config := facetBuilder("some.{{locale}}.foo.{{locale}}.bar").MustBuild()
	selector := createSelector(t, config, []string{})
	expr := selector.FacetedSearchExpression()
	assert.Equal(t, "some.en.foo.en.bar", expr.FacetExpression().Expression())
	assert.Empty(t, expr.FilterExpressions())
}

func TestNoSelectionForKey(t *testing.T) {
	config := facetBuilder("attr").MustBuild()
	requestContext := storefront.NewRequestContext(url.Values{"other": {"x"}}, "/search")
	selector, err := NewSelectorFactory(config, testUserContext(), requestContext, nil, nil).Create()
	require.NoError(t, err)
	assert.Equal(t, FacetExpression("attr"), selector.FacetedSearchExpression().FacetExpression())
	assert.Equal(t, []FilterExpression{}, selector.FacetedSearchExpression().FilterExpressions())
	assert.Equal(t, []string{}, selector.SelectedValues())
}

func TestUnboundSelectorFailsFast(t *testing.T) {
	selector := createSelector(t, facetBuilder("attr").MustBuild(), []string{"foo"})
	_, err := selector.Facet()
	assert.True(t, errors.Is(err, ErrSearchNotExecuted))

	bound := selector.Bind(searchResult(t))
	assert.True(t, bound.Bound())
	assert.False(t, selector.Bound(), "bind must not change the original selector")
}

func TestFacetIsMemoized(t *testing.T) {
	bound := createSelector(t, facetBuilder("foo.bar").MustBuild(), nil).Bind(searchResult(t))
	a, err := bound.Facet()
	require.NoError(t, err)
	b, err := bound.Facet()
	require.NoError(t, err)
	assert.Same(t, a.(*SelectFacet), b.(*SelectFacet))
}

func TestMissingBucketGivesEmptyOptions(t *testing.T) {
	facet, err := createSelector(t, facetBuilder("unknown.attr").MustBuild(), nil).Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	selectFacet := facet.(*SelectFacet)
	assert.Empty(t, selectFacet.Options())
	assert.False(t, selectFacet.Available())
}

func TestUnsupportedFacetType(t *testing.T) {
	config := facetBuilder("price").Type(RangeType).MustBuild()
	requestContext := storefront.NewRequestContext(nil, "")
	_, err := NewSelectorFactory(config, testUserContext(), requestContext, nil, []FacetType{ListType}).Create()
	assert.True(t, errors.Is(err, ErrUnsupportedFacetType))

	_, err = NewSelectorFactory(config, testUserContext(), requestContext, nil, AllTypes).Create()
	assert.NoError(t, err)
}

func categoryTree() *category.Tree {
	return category.NewTree([]sdk.Category{
		{Id: "shirts", Name: sdk.LocalizedString{"en": "Shirts", "de": "Hemden"}, Slug: sdk.LocalizedString{"en": "shirts", "de": "hemden"}},
		{Id: "shoes", Name: sdk.LocalizedString{"de": "Schuhe"}, Slug: sdk.LocalizedString{"en": "shoes"}},
	})
}

func TestCategoryFacetResolvesSlugsAndLabels(t *testing.T) {
	config := NewConfigBuilder("category", "categories.id").Type(CategoryType).MatchingAll(false).MustBuild()
	query := url.Values{"category": {"shirts", "shoes", "unknown"}}
	selector, err := NewSelectorFactory(config, testUserContext(), storefront.NewRequestContext(query, ""), categoryTree(), nil).Create()
	require.NoError(t, err)

	assert.Equal(t, []string{`categories.id:"shirts","shoes"`}, filterStrings(selector.FacetedSearchExpression()))
	assert.Equal(t, []string{"shirts", "shoes", "unknown"}, selector.SelectedValues())

	facet, err := selector.Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	options := facet.(*SelectFacet).Options()
	require.Len(t, options, 2)
	assert.Equal(t, "Shirts", options[0].Label)
	assert.Equal(t, "Schuhe", options[1].Label, "falls back to the other locales")
	assert.True(t, options[0].Selected)
}

func TestCategoryFacetBySlugInUserLocale(t *testing.T) {
	config := NewConfigBuilder("category", "categories.id").Type(CategoryType).MustBuild()
	userContext := storefront.NewUserContext(language.German, "DE", "EUR")
	query := url.Values{"category": {"hemden"}}
	selector, err := NewSelectorFactory(config, userContext, storefront.NewRequestContext(query, ""), categoryTree(), nil).Create()
	require.NoError(t, err)
	assert.Equal(t, []string{`categories.id:"shirts"`}, filterStrings(selector.FacetedSearchExpression()))
}

func TestRangeFacet(t *testing.T) {
	config := NewConfigBuilder("price", "variants.price.centAmount").Type(RangeType).MustBuild()
	selector := createSelector(t, config, []string{"1000-5000", "bogus"})
	expr := selector.FacetedSearchExpression()
	assert.Equal(t, "variants.price.centAmount:range(0 to *)", expr.FacetExpression().Expression())
	assert.Equal(t, []string{"variants.price.centAmount:range (1000 to 5000)"}, filterStrings(expr))

	facet, err := selector.Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	rangeFacet, ok := facet.(*RangeFacet)
	require.True(t, ok)
	assert.Equal(t, 1500.0, rangeFacet.Min())
	assert.Equal(t, 12000.0, rangeFacet.Max())
	assert.Equal(t, int64(5), rangeFacet.Count())
	assert.True(t, rangeFacet.Selected())
	assert.True(t, rangeFacet.Available())
}

func TestToggleFacet(t *testing.T) {
	config := NewConfigBuilder("sale", "variants.attributes.onSale").Type(ToggleType).MustBuild()
	selector := createSelector(t, config, []string{"true"})
	assert.Equal(t, []string{"variants.attributes.onSale:true"}, filterStrings(selector.FacetedSearchExpression()))

	facet, err := selector.Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	toggle, ok := facet.(*ToggleFacet)
	require.True(t, ok)
	assert.True(t, toggle.Selected())
	assert.Equal(t, int64(2), toggle.Count())
}

func TestToggleFacetOffDoesNotFilter(t *testing.T) {
	config := NewConfigBuilder("sale", "variants.attributes.onSale").Type(ToggleType).MustBuild()
	selector := createSelector(t, config, []string{"false"})
	assert.Empty(t, filterStrings(selector.FacetedSearchExpression()))

	facet, err := selector.Bind(searchResult(t)).Facet()
	require.NoError(t, err)
	toggle, ok := facet.(*ToggleFacet)
	require.True(t, ok)
	assert.False(t, toggle.Selected())
	assert.Equal(t, int64(2), toggle.Count())
	assert.True(t, toggle.Available())
}

func TestCreateSelectorsKeepsOrder(t *testing.T) {
	configs := []Config{
		NewConfigBuilder("b", "attr.b").MustBuild(),
		NewConfigBuilder("a", "attr.a").MustBuild(),
	}
	selectors, err := CreateSelectors(configs, testUserContext(), storefront.NewRequestContext(url.Values{"a": {"x"}}, ""), nil, nil)
	require.NoError(t, err)
	require.Len(t, selectors, 2)
	assert.Equal(t, "b", selectors[0].Config().Key())
	assert.Equal(t, []string{`attr.a:"x"`}, filterStrings(selectors[1].FacetedSearchExpression()))
}
