package storefront

import (
	"net/http"
	"net/url"
	"slices"

	"golang.org/x/text/language"
)

// UserContext carries the per-request user preferences the storefront renders with.
type UserContext struct {
	Locale          language.Tag
	FallbackLocales []language.Tag
	Country         string
	Currency        string
}

func NewUserContext(locale language.Tag, country, currency string, fallback ...language.Tag) *UserContext {
	return &UserContext{
		Locale:          locale,
		FallbackLocales: fallback,
		Country:         country,
		Currency:        currency,
	}
}

// LocaleString is the locale as used in attribute paths and localized text keys, e.g. "en" or "de-DE".
func (u *UserContext) LocaleString() string {
	return u.Locale.String()
}

// Locales returns the locale followed by the fallbacks, without duplicates.
func (u *UserContext) Locales() []language.Tag {
	ret := make([]language.Tag, 0, len(u.FallbackLocales)+1)
	ret = append(ret, u.Locale)
	for _, l := range u.FallbackLocales {
		if !slices.Contains(ret, l) {
			ret = append(ret, l)
		}
	}
	return ret
}

type RequestContext struct {
	query url.Values
	path  string
}

func NewRequestContext(query url.Values, path string) *RequestContext {
	if query == nil {
		query = url.Values{}
	}
	return &RequestContext{query: query, path: path}
}

func RequestContextFromRequest(r *http.Request) *RequestContext {
	return NewRequestContext(r.URL.Query(), r.URL.Path)
}

func (r *RequestContext) Query() url.Values {
	return r.query
}

func (r *RequestContext) Path() string {
	return r.path
}
