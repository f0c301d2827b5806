package storefront

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	LocaleQueryParam = "lang"
	LocaleCookieName = "locale"
)

// LocaleResolver picks the user locale among the ones the shop supports.
// Precedence: query parameter, cookie, Accept-Language header, default.
type LocaleResolver struct {
	supported []language.Tag
	matcher   language.Matcher
	Country   string
	Currency  string
}

// NewLocaleResolver panics when no locale is supported, the first one is the default.
func NewLocaleResolver(country, currency string, supported ...language.Tag) *LocaleResolver {
	if len(supported) == 0 {
		panic("storefront: at least one supported locale required")
	}
	return &LocaleResolver{
		supported: supported,
		matcher:   language.NewMatcher(supported),
		Country:   country,
		Currency:  currency,
	}
}

func (l *LocaleResolver) Default() language.Tag {
	return l.supported[0]
}

func (l *LocaleResolver) Supported() []language.Tag {
	return l.supported
}

// Match returns the best supported locale for the given preferences, the
// default when nothing matches with at least low confidence.
func (l *LocaleResolver) Match(preferred ...string) language.Tag {
	for _, p := range preferred {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, confidence := l.matcher.Match(tags...)
		if confidence != language.No {
			return l.supported[idx]
		}
	}
	return l.Default()
}

func (l *LocaleResolver) Resolve(r *http.Request) language.Tag {
	preferred := make([]string, 0, 3)
	preferred = append(preferred, r.URL.Query().Get(LocaleQueryParam))
	if c, err := r.Cookie(LocaleCookieName); err == nil {
		preferred = append(preferred, c.Value)
	}
	preferred = append(preferred, r.Header.Get("Accept-Language"))
	return l.Match(preferred...)
}

// UserContext builds the user context for the request, using the remaining
// supported locales as fallbacks for localized texts.
func (l *LocaleResolver) UserContext(r *http.Request) *UserContext {
	locale := l.Resolve(r)
	fallback := make([]language.Tag, 0, len(l.supported))
	for _, s := range l.supported {
		if s != locale {
			fallback = append(fallback, s)
		}
	}
	return NewUserContext(locale, l.Country, l.Currency, fallback...)
}
