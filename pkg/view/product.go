package view

import (
	"fmt"
	"strconv"

	"github.com/matst80/slask-storefront/pkg/sdk"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ProductThumbnailBean struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Url      string `json:"url"`
	Sku      string `json:"sku,omitempty"`
	Image    string `json:"image,omitempty"`
	Price    string `json:"price,omitempty"`
	PriceOld string `json:"priceOld,omitempty"`
	Sale     bool   `json:"sale,omitempty"`
}

type ProductAttributeBean struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductDetailsBean struct {
	Features []ProductAttributeBean `json:"features"`
}

type ProductBean struct {
	ProductThumbnailBean
	Description string             `json:"description,omitempty"`
	Images      []string           `json:"images,omitempty"`
	Details     ProductDetailsBean `json:"details"`
	Breadcrumb  []LinkBean         `json:"breadcrumb,omitempty"`
}

type LinkBean struct {
	Text string `json:"text"`
	Url  string `json:"url"`
}

// FormatMoney renders the amount with the currency symbol in the locale's number format.
func FormatMoney(m sdk.Money, locale language.Tag) string {
	unit, err := currency.ParseISO(m.CurrencyCode)
	if err != nil {
		return strconv.FormatFloat(m.Amount(), 'f', 2, 64) + " " + m.CurrencyCode
	}
	return message.NewPrinter(locale).Sprint(currency.Symbol(unit.Amount(m.Amount())))
}

func ProductUrl(slug string, userContext *storefront.UserContext) string {
	return fmt.Sprintf("/%s/%s.html", userContext.LocaleString(), slug)
}

func NewProductThumbnailBean(p *sdk.ProductProjection, userContext *storefront.UserContext) ProductThumbnailBean {
	locales := userContext.Locales()
	variant := p.DisplayVariant()
	slug := p.Slug.Find(locales...)
	bean := ProductThumbnailBean{
		Id:   p.Id,
		Name: p.Name.Find(locales...),
		Slug: slug,
		Url:  ProductUrl(slug, userContext),
		Sku:  variant.Sku,
	}
	if len(variant.Images) > 0 {
		bean.Image = variant.Images[0].Url
	}
	if price, ok := variant.PriceFor(userContext.Currency, userContext.Country); ok {
		if price.Discount != nil {
			bean.Price = FormatMoney(price.Discount.Value, userContext.Locale)
			bean.PriceOld = FormatMoney(price.Value, userContext.Locale)
			bean.Sale = true
		} else {
			bean.Price = FormatMoney(price.Value, userContext.Locale)
		}
	}
	return bean
}

// NewProductDetailsBean lists the named attributes of the variant, in the given
// order, skipping the ones the variant does not have.
func NewProductDetailsBean(variant *sdk.ProductVariant, attributes []AttributeLabel, userContext *storefront.UserContext) ProductDetailsBean {
	features := make([]ProductAttributeBean, 0, len(attributes))
	for _, a := range attributes {
		attr, ok := variant.Attribute(a.Name)
		if !ok {
			continue
		}
		value := FormatAttributeValue(attr.Value, userContext)
		if value == "" {
			continue
		}
		features = append(features, ProductAttributeBean{
			Key:   a.Name,
			Name:  a.Label.Find(userContext.Locales()...),
			Value: value,
		})
	}
	return ProductDetailsBean{Features: features}
}

// AttributeLabel names an attribute shown on the product detail page.
type AttributeLabel struct {
	Name  string              `json:"name"`
	Label sdk.LocalizedString `json:"label"`
}

func localizedFromMap(m map[string]any) sdk.LocalizedString {
	ls := make(sdk.LocalizedString, len(m))
	for k, v := range m {
		if s, ok := v.(string); ok {
			ls[k] = s
		}
	}
	return ls
}

// FormatAttributeValue renders the JSON value of an attribute: text,
// localized text, enums, booleans, numbers, money and sets of those.
func FormatAttributeValue(value any, userContext *storefront.UserContext) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		ret := ""
		for i, item := range v {
			if i > 0 {
				ret += ", "
			}
			ret += FormatAttributeValue(item, userContext)
		}
		return ret
	case map[string]any:
		if label, ok := v["label"]; ok {
			return FormatAttributeValue(label, userContext)
		}
		if code, ok := v["currencyCode"].(string); ok {
			cents, _ := v["centAmount"].(float64)
			digits, _ := v["fractionDigits"].(float64)
			return FormatMoney(sdk.Money{CurrencyCode: code, CentAmount: int64(cents), FractionDigits: int(digits)}, userContext.Locale)
		}
		if key, ok := v["key"].(string); ok && len(v) == 1 {
			return key
		}
		return localizedFromMap(v).Find(userContext.Locales()...)
	}
	return fmt.Sprint(value)
}

func NewProductBean(p *sdk.ProductProjection, attributes []AttributeLabel, breadcrumb []LinkBean, userContext *storefront.UserContext) ProductBean {
	variant := p.DisplayVariant()
	images := make([]string, 0, len(variant.Images))
	for _, img := range variant.Images {
		images = append(images, img.Url)
	}
	return ProductBean{
		ProductThumbnailBean: NewProductThumbnailBean(p, userContext),
		Description:          p.Description.Find(userContext.Locales()...),
		Images:               images,
		Details:              NewProductDetailsBean(variant, attributes, userContext),
		Breadcrumb:           breadcrumb,
	}
}
