package facet

import (
	"net/url"
	"slices"
	"strings"
)

const LocalePlaceholder = "{{locale}}"

// ResolvePath substitutes every locale placeholder in the attribute path template.
func ResolvePath(template, locale string) string {
	return strings.ReplaceAll(template, LocalePlaceholder, locale)
}

// SelectedValues returns the values of the facet key in request order,
// duplicates included. Absent keys give an empty selection.
func SelectedValues(query url.Values, key string) []string {
	values := query[key]
	if len(values) == 0 {
		return []string{}
	}
	return slices.Clone(values)
}
