package facet

import (
	"strconv"
	"strings"
)

// Range is a selected interval, nil bounds are open.
type Range struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

func parseBound(s string) (*float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// ParseRange reads "from-to" where either side may be "*" or empty.
// Fully open or inverted ranges are rejected.
func ParseRange(s string) (Range, bool) {
	from, to, found := strings.Cut(s, "-")
	if !found {
		return Range{}, false
	}
	f, ok := parseBound(from)
	if !ok {
		return Range{}, false
	}
	t, ok := parseBound(to)
	if !ok {
		return Range{}, false
	}
	if f == nil && t == nil {
		return Range{}, false
	}
	if f != nil && t != nil && *f > *t {
		return Range{}, false
	}
	return Range{From: f, To: t}, true
}

// ParseRanges keeps the parsable values in order.
func ParseRanges(values []string) []Range {
	ret := make([]Range, 0, len(values))
	for _, v := range values {
		if r, ok := ParseRange(v); ok {
			ret = append(ret, r)
		}
	}
	return ret
}

func formatBound(f *float64) string {
	if f == nil {
		return "*"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func (r Range) String() string {
	return formatBound(r.From) + "-" + formatBound(r.To)
}

func (r Range) expression() string {
	return "(" + formatBound(r.From) + " to " + formatBound(r.To) + ")"
}

func (r Range) Contains(v float64) bool {
	if r.From != nil && v < *r.From {
		return false
	}
	if r.To != nil && v > *r.To {
		return false
	}
	return true
}
