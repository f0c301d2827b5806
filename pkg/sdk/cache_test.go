package sdk

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memoryStore struct {
	data map[string][]byte
	fail error
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	d, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return d, nil
}

func (m *memoryStore) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	if m.fail != nil {
		return m.fail
	}
	m.data[key] = data
	return nil
}

type countingSearcher struct {
	calls int
	err   error
}

func (c *countingSearcher) SearchProducts(_ context.Context, _ *ProductSearchRequest) (*PagedSearchResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &PagedSearchResult{Total: 7, Facets: map[string]FacetResult{"attr": {Type: "terms", Terms: []TermStat{{Term: "a", Count: 7}}}}}, nil
}

func TestCachedSearcherHitsStore(t *testing.T) {
	next := &countingSearcher{}
	cache := NewCachedSearcher(next, &memoryStore{data: map[string][]byte{}}, time.Minute, "test:")
	req := &ProductSearchRequest{Facets: []string{"attr"}}

	for range 3 {
		res, err := cache.SearchProducts(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if res.Total != 7 || res.Facets["attr"].Terms[0].Count != 7 {
			t.Errorf("unexpected result %+v", res)
		}
	}
	if next.calls != 1 {
		t.Errorf("expected one upstream search, got %d", next.calls)
	}
}

func TestCachedSearcherKeyDependsOnRequest(t *testing.T) {
	cache := NewCachedSearcher(&countingSearcher{}, &memoryStore{data: map[string][]byte{}}, time.Minute, "")
	a := cache.CacheKey(&ProductSearchRequest{Filters: []string{`attr:"a"`}})
	b := cache.CacheKey(&ProductSearchRequest{Filters: []string{`attr:"b"`}})
	if a == b {
		t.Errorf("expected different keys, got %s", a)
	}
	if a != cache.CacheKey(&ProductSearchRequest{Filters: []string{`attr:"a"`}}) {
		t.Error("expected stable key")
	}
}

func TestCachedSearcherIgnoresStoreFailure(t *testing.T) {
	next := &countingSearcher{}
	cache := NewCachedSearcher(next, &memoryStore{fail: errors.New("connection refused")}, time.Minute, "")
	res, err := cache.SearchProducts(context.Background(), &ProductSearchRequest{})
	if err != nil || res.Total != 7 {
		t.Errorf("expected upstream result, got %v %v", res, err)
	}
}

func TestCachedSearcherPropagatesSearchError(t *testing.T) {
	upstream := &Error{StatusCode: 503}
	cache := NewCachedSearcher(&countingSearcher{err: upstream}, &memoryStore{data: map[string][]byte{}}, time.Minute, "")
	_, err := cache.SearchProducts(context.Background(), &ProductSearchRequest{})
	if !errors.Is(err, upstream) {
		t.Errorf("expected upstream error, got %v", err)
	}
}
