package sdk

import (
	"sort"

	"golang.org/x/text/language"
)

// LocalizedString maps locale keys ("en", "de-DE") to text.
type LocalizedString map[string]string

// Get returns the text for the first locale with a value. A regional locale
// also matches its base language.
func (l LocalizedString) Get(locales ...language.Tag) (string, bool) {
	for _, locale := range locales {
		if v, ok := l[locale.String()]; ok {
			return v, true
		}
		base, _ := locale.Base()
		if v, ok := l[base.String()]; ok {
			return v, true
		}
	}
	return "", false
}

// Find is Get with a deterministic last resort: the value of the smallest key.
func (l LocalizedString) Find(locales ...language.Tag) string {
	if v, ok := l.Get(locales...); ok {
		return v
	}
	if len(l) == 0 {
		return ""
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return l[keys[0]]
}

type Money struct {
	CurrencyCode   string `json:"currencyCode"`
	CentAmount     int64  `json:"centAmount"`
	FractionDigits int    `json:"fractionDigits,omitempty"`
}

// Amount is the value in major units.
func (m Money) Amount() float64 {
	digits := m.FractionDigits
	if digits == 0 {
		digits = 2
	}
	div := 1.0
	for range digits {
		div *= 10
	}
	return float64(m.CentAmount) / div
}

type Price struct {
	Id       string          `json:"id"`
	Value    Money           `json:"value"`
	Country  string          `json:"country,omitempty"`
	Discount *DiscountedPrice `json:"discounted,omitempty"`
}

type DiscountedPrice struct {
	Value Money `json:"value"`
}

type Image struct {
	Url        string `json:"url"`
	Label      string `json:"label,omitempty"`
	Dimensions struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"dimensions"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type ProductVariant struct {
	Id         int         `json:"id"`
	Sku        string      `json:"sku,omitempty"`
	Prices     []Price     `json:"prices,omitempty"`
	Price      *Price      `json:"price,omitempty"`
	Images     []Image     `json:"images,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty"`
	IsMatching bool        `json:"isMatchingVariant,omitempty"`
}

func (v *ProductVariant) Attribute(name string) (Attribute, bool) {
	for _, a := range v.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// PriceFor returns the embedded scoped price if present, otherwise the first
// price in the currency, preferring one for the country.
func (v *ProductVariant) PriceFor(currency, country string) (Price, bool) {
	if v.Price != nil {
		return *v.Price, true
	}
	var found *Price
	for i := range v.Prices {
		p := &v.Prices[i]
		if p.Value.CurrencyCode != currency {
			continue
		}
		if p.Country == country {
			return *p, true
		}
		if found == nil && p.Country == "" {
			found = p
		}
	}
	if found != nil {
		return *found, true
	}
	return Price{}, false
}

type Reference struct {
	TypeId string `json:"typeId"`
	Id     string `json:"id"`
}

type ProductProjection struct {
	Id          string           `json:"id"`
	Key         string           `json:"key,omitempty"`
	Version     int64            `json:"version"`
	Name        LocalizedString  `json:"name"`
	Description LocalizedString  `json:"description,omitempty"`
	Slug        LocalizedString  `json:"slug"`
	Categories  []Reference      `json:"categories,omitempty"`
	Master      ProductVariant   `json:"masterVariant"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// AllVariants returns the master variant followed by the other variants.
func (p *ProductProjection) AllVariants() []*ProductVariant {
	ret := make([]*ProductVariant, 0, len(p.Variants)+1)
	ret = append(ret, &p.Master)
	for i := range p.Variants {
		ret = append(ret, &p.Variants[i])
	}
	return ret
}

// DisplayVariant is the first variant matching the search, or the master.
func (p *ProductProjection) DisplayVariant() *ProductVariant {
	for _, v := range p.AllVariants() {
		if v.IsMatching {
			return v
		}
	}
	return &p.Master
}

type Category struct {
	Id        string          `json:"id"`
	Key       string          `json:"key,omitempty"`
	Name      LocalizedString `json:"name"`
	Slug      LocalizedString `json:"slug"`
	Parent    *Reference      `json:"parent,omitempty"`
	OrderHint string          `json:"orderHint,omitempty"`
}
