package server

import (
	"net/url"
	"testing"
)

func TestDecodeSearchRequest(t *testing.T) {
	query := url.Values{
		"q":     []string{" shirt "},
		"page":  []string{"2"},
		"size":  []string{"10"},
		"sort":  []string{"name-asc"},
		"color": []string{"red"},
	}
	sr, err := DecodeSearchRequest(query)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sr.Query != "shirt" {
		t.Errorf("expected query to be shirt, got %q", sr.Query)
	}
	if sr.Page != 2 || sr.PageSize != 10 || sr.Offset() != 20 {
		t.Errorf("expected page 2 of size 10, got %+v", sr)
	}
	if got := sr.SortExpression("de"); got != "name.de asc" {
		t.Errorf("expected name.de asc, got %s", got)
	}
}

func TestDecodeSearchRequestDefaults(t *testing.T) {
	sr, err := DecodeSearchRequest(url.Values{"page": {"-3"}, "size": {"1000"}, "sort": {"random"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sr.Page != 0 || sr.PageSize != MaxPageSize || sr.Sort != "" {
		t.Errorf("expected clamped request, got %+v", sr)
	}
	if sr.SortExpression("en") != "" {
		t.Error("expected relevance sort")
	}

	sr, _ = DecodeSearchRequest(url.Values{})
	if sr.PageSize != DefaultPageSize {
		t.Errorf("expected default page size, got %d", sr.PageSize)
	}
}

func TestDecodeSearchRequestInvalid(t *testing.T) {
	if _, err := DecodeSearchRequest(url.Values{"page": {"abc"}}); err == nil {
		t.Error("expected error for non numeric page")
	}
}

func TestDecodeSearchRequestDeepPage(t *testing.T) {
	sr, err := DecodeSearchRequest(url.Values{"page": {"400000000000000000"}, "size": {"24"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sr.Page != MaxOffset/24 {
		t.Errorf("expected page to be clamped to %d, got %d", MaxOffset/24, sr.Page)
	}
	if off := sr.Offset(); off < 0 || off > MaxOffset {
		t.Errorf("expected offset within 0..%d, got %d", MaxOffset, off)
	}
}
