package facet

import (
	"errors"
	"fmt"
)

// FacetType decides how selections are turned into filters and which Facet
// variant the selector produces.
type FacetType string

const (
	ListType     FacetType = "list"
	CategoryType FacetType = "category"
	RangeType    FacetType = "range"
	ToggleType   FacetType = "toggle"
)

var AllTypes = []FacetType{ListType, CategoryType, RangeType, ToggleType}

func ParseFacetType(s string) (FacetType, error) {
	switch t := FacetType(s); t {
	case ListType, CategoryType, RangeType, ToggleType:
		return t, nil
	case "":
		return ListType, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

var (
	ErrEmptyKey           = errors.New("facet: key must not be empty")
	ErrEmptyAttributePath = errors.New("facet: attribute path must not be empty")
	ErrUnknownType        = errors.New("facet: unknown facet type")
)

// Config describes one facet. It is immutable once built.
type Config struct {
	key           string
	label         string
	attributePath string
	facetType     FacetType
	countHidden   bool
	matchingAll   bool
	multiSelect   bool
	limit         int64
	threshold     int64
	mapper        OptionMapper
}

func (c Config) Key() string           { return c.key }
func (c Config) Label() string         { return c.label }
func (c Config) AttributePath() string { return c.attributePath }
func (c Config) Type() FacetType       { return c.facetType }
func (c Config) CountHidden() bool     { return c.countHidden }
func (c Config) MatchingAll() bool     { return c.matchingAll }
func (c Config) MultiSelect() bool     { return c.multiSelect }

// Limit caps the number of displayed options, 0 means no cap.
func (c Config) Limit() int64 { return c.limit }

// Threshold is the number of options with hits required before the facet is shown.
func (c Config) Threshold() int64 { return c.threshold }

func (c Config) Mapper() OptionMapper { return c.mapper }

type ConfigBuilder struct {
	cfg Config
}

func NewConfigBuilder(key, attributePath string) *ConfigBuilder {
	return &ConfigBuilder{cfg: Config{
		key:           key,
		attributePath: attributePath,
		facetType:     ListType,
		matchingAll:   true,
		mapper:        InsertionOrderMapper{},
	}}
}

func (b *ConfigBuilder) Label(label string) *ConfigBuilder {
	b.cfg.label = label
	return b
}

func (b *ConfigBuilder) Type(t FacetType) *ConfigBuilder {
	b.cfg.facetType = t
	return b
}

func (b *ConfigBuilder) CountHidden(hidden bool) *ConfigBuilder {
	b.cfg.countHidden = hidden
	return b
}

func (b *ConfigBuilder) MatchingAll(all bool) *ConfigBuilder {
	b.cfg.matchingAll = all
	return b
}

func (b *ConfigBuilder) MultiSelect(multi bool) *ConfigBuilder {
	b.cfg.multiSelect = multi
	return b
}

func (b *ConfigBuilder) Limit(limit int64) *ConfigBuilder {
	b.cfg.limit = max(limit, 0)
	return b
}

func (b *ConfigBuilder) Threshold(threshold int64) *ConfigBuilder {
	b.cfg.threshold = max(threshold, 0)
	return b
}

func (b *ConfigBuilder) Mapper(mapper OptionMapper) *ConfigBuilder {
	if mapper == nil {
		mapper = InsertionOrderMapper{}
	}
	b.cfg.mapper = mapper
	return b
}

func (b *ConfigBuilder) Build() (Config, error) {
	if b.cfg.key == "" {
		return Config{}, ErrEmptyKey
	}
	if b.cfg.attributePath == "" {
		return Config{}, ErrEmptyAttributePath
	}
	t, err := ParseFacetType(string(b.cfg.facetType))
	if err != nil {
		return Config{}, err
	}
	cfg := b.cfg
	cfg.facetType = t
	return cfg, nil
}

// MustBuild is Build for static configuration, it panics on error.
func (b *ConfigBuilder) MustBuild() Config {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
