package facet

import (
	"errors"
	"fmt"
	"io"

	"github.com/matst80/slask-storefront/pkg/common/jsoncompat"
)

var ErrDuplicateKey = errors.New("facet: duplicate facet key")

// Definition is the stored form of a Config.
type Definition struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	AttributePath string `json:"attributePath"`
	Type          string `json:"type,omitempty"`
	CountHidden   bool   `json:"countHidden,omitempty"`
	MatchingAll   *bool  `json:"matchingAll,omitempty"`
	MultiSelect   bool   `json:"multiSelect,omitempty"`
	Limit         int64  `json:"limit,omitempty"`
	Threshold     int64  `json:"threshold,omitempty"`
	Mapper        string `json:"mapper,omitempty"`
}

func (d Definition) Config() (Config, error) {
	t, err := ParseFacetType(d.Type)
	if err != nil {
		return Config{}, err
	}
	mapper, err := MapperByName(d.Mapper)
	if err != nil {
		return Config{}, err
	}
	b := NewConfigBuilder(d.Key, d.AttributePath).
		Label(d.Label).
		Type(t).
		CountHidden(d.CountHidden).
		MultiSelect(d.MultiSelect).
		Limit(d.Limit).
		Threshold(d.Threshold).
		Mapper(mapper)
	if d.MatchingAll != nil {
		b.MatchingAll(*d.MatchingAll)
	}
	return b.Build()
}

// LoadDefinitions reads a JSON array of definitions and builds the configs in file order.
func LoadDefinitions(r io.Reader) ([]Config, error) {
	var defs []Definition
	if err := jsoncompat.NewDecoder(r).Decode(&defs); err != nil {
		return nil, fmt.Errorf("facet: decode definitions: %w", err)
	}
	seen := make(map[string]struct{}, len(defs))
	ret := make([]Config, 0, len(defs))
	for i, d := range defs {
		if _, dup := seen[d.Key]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, d.Key)
		}
		seen[d.Key] = struct{}{}
		c, err := d.Config()
		if err != nil {
			return nil, fmt.Errorf("facet: definition %d: %w", i, err)
		}
		ret = append(ret, c)
	}
	return ret, nil
}
