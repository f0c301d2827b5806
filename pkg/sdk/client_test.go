package sdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

const searchResponse = `{
  "offset": 0, "limit": 20, "count": 1, "total": 1,
  "results": [{
    "id": "p1", "version": 3,
    "name": {"en": "Shirt", "de": "Hemd"},
    "slug": {"en": "shirt", "de": "hemd"},
    "masterVariant": {"id": 1, "sku": "S-1", "prices": [{"id": "pr", "value": {"currencyCode": "EUR", "centAmount": 1999, "fractionDigits": 2}}]}
  }],
  "facets": {
    "variants.attributes.color.en": {"type": "terms", "dataType": "text", "missing": 0, "total": 3, "other": 0,
      "terms": [{"term": "red", "count": 2}, {"term": "blue", "count": 1}]}
  }
}`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHttp(ClientConfig{ProjectKey: "shop", ApiUrl: srv.URL}, srv.Client())
}

func TestSearchProductsEncodesRequest(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		fmt.Fprint(w, searchResponse)
	})

	req := &ProductSearchRequest{Text: "shirt", Locale: "en", Limit: 20, Offset: 40, Currency: "EUR", Country: "DE"}
	req.AddFacetedSearch("variants.attributes.color.en", `variants.attributes.color.en:"red"`)
	result, err := client.SearchProducts(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if gotPath != "/shop/product-projections/search" {
		t.Errorf("unexpected path %s", gotPath)
	}
	expected := map[string]string{
		"text.en":       "shirt",
		"facet":         "variants.attributes.color.en",
		"filter":        `variants.attributes.color.en:"red"`,
		"limit":         "20",
		"offset":        "40",
		"priceCurrency": "EUR",
		"priceCountry":  "DE",
		"staged":        "false",
	}
	for k, v := range expected {
		if len(gotQuery[k]) != 1 || gotQuery[k][0] != v {
			t.Errorf("expected %s=%s, got %v", k, v, gotQuery[k])
		}
	}
	if result.Total != 1 || len(result.Results) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if name := result.Results[0].Name.Find(language.German); name != "Hemd" {
		t.Errorf("expected Hemd, got %s", name)
	}
	facet, ok := result.Facet("variants.attributes.color.en")
	if !ok || len(facet.Terms) != 2 || facet.Terms[0].Term != "red" || facet.Terms[0].Count != 2 {
		t.Errorf("unexpected facet %+v", facet)
	}
}

func TestSearchProductsDecodesPlatformError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"statusCode": 400, "message": "Malformed parameter: filter", "errors": [{"code": "InvalidInput", "message": "Malformed parameter: filter"}]}`)
	})
	_, err := client.SearchProducts(context.Background(), &ProductSearchRequest{})
	var platformErr *Error
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %v", err)
	}
	if platformErr.StatusCode != http.StatusBadRequest || len(platformErr.Errors) != 1 {
		t.Errorf("unexpected error %+v", platformErr)
	}
}

func TestSearchProductsPlainTextError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	})
	_, err := client.SearchProducts(context.Background(), &ProductSearchRequest{})
	var platformErr *Error
	if !errors.As(err, &platformErr) {
		t.Fatalf("expected platform error, got %v", err)
	}
	if platformErr.StatusCode != http.StatusServiceUnavailable || platformErr.Message != "upstream down" {
		t.Errorf("unexpected error %+v", platformErr)
	}
}

func TestProductBySlug(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("where") != `slug(en="shirt")` {
			fmt.Fprint(w, `{"offset":0,"count":0,"total":0,"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"offset":0,"count":1,"total":1,"results":[{"id":"p1","name":{"en":"Shirt"},"slug":{"en":"shirt"},"masterVariant":{"id":1}}]}`)
	})
	p, err := client.ProductBySlug(context.Background(), "shirt", "en")
	if err != nil || p.Id != "p1" {
		t.Fatalf("expected p1, got %v %v", p, err)
	}
	_, err = client.ProductBySlug(context.Background(), "missing", "en")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCategoriesPages(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, `{"offset":0,"count":2,"total":2,"results":[{"id":"c1","name":{"en":"Men"},"slug":{"en":"men"}},{"id":"c2","name":{"en":"Shirts"},"slug":{"en":"shirts"},"parent":{"typeId":"category","id":"c1"}}]}`)
			return
		}
		fmt.Fprint(w, `{"offset":500,"count":0,"total":2,"results":[]}`)
	})
	categories, err := client.Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 || categories[1].Parent.Id != "c1" {
		t.Errorf("unexpected categories %+v", categories)
	}
	if calls != 1 {
		t.Errorf("expected a single page request, got %d", calls)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (ClientConfig{ProjectKey: "p"}).Validate(); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected missing credentials, got %v", err)
	}
	cfg := ClientConfig{ProjectKey: "p", ClientId: "id", ClientSecret: "secret"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	scopes := cfg.scopes()
	if len(scopes) != 2 || scopes[0] != "view_products:p" {
		t.Errorf("unexpected default scopes %v", scopes)
	}
}

func TestMoneyAndPrice(t *testing.T) {
	m := Money{CurrencyCode: "EUR", CentAmount: 1999, FractionDigits: 2}
	if m.Amount() != 19.99 {
		t.Errorf("expected 19.99, got %v", m.Amount())
	}
	v := ProductVariant{Prices: []Price{
		{Id: "usd", Value: Money{CurrencyCode: "USD", CentAmount: 100}},
		{Id: "eur", Value: Money{CurrencyCode: "EUR", CentAmount: 200}},
		{Id: "eur-de", Value: Money{CurrencyCode: "EUR", CentAmount: 300}, Country: "DE"},
	}}
	if p, ok := v.PriceFor("EUR", "DE"); !ok || p.Id != "eur-de" {
		t.Errorf("expected country price, got %+v", p)
	}
	if p, ok := v.PriceFor("EUR", "AT"); !ok || p.Id != "eur" {
		t.Errorf("expected generic price, got %+v", p)
	}
	if _, ok := v.PriceFor("SEK", ""); ok {
		t.Error("expected no price")
	}
}

func TestLocalizedStringFallbacks(t *testing.T) {
	l := LocalizedString{"en": "Shirt", "de": "Hemd"}
	if v, _ := l.Get(language.MustParse("de-CH")); v != "Hemd" {
		t.Errorf("expected base language match, got %s", v)
	}
	if v := l.Find(language.French); v != "Hemd" {
		t.Errorf("expected smallest key fallback, got %s", v)
	}
	if _, ok := l.Get(language.French); ok {
		t.Error("expected no match")
	}
}
