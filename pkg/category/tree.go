package category

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-storefront/pkg/sdk"
	"golang.org/x/text/language"
)

// Tree is a read only index over the project categories.
type Tree struct {
	all      []*sdk.Category
	byId     map[string]*sdk.Category
	byKey    map[string]*sdk.Category
	children map[string][]*sdk.Category
	roots    []*sdk.Category
}

func NewTree(categories []sdk.Category) *Tree {
	t := &Tree{
		all:      make([]*sdk.Category, 0, len(categories)),
		byId:     make(map[string]*sdk.Category, len(categories)),
		byKey:    make(map[string]*sdk.Category),
		children: make(map[string][]*sdk.Category),
	}
	for i := range categories {
		c := &categories[i]
		t.all = append(t.all, c)
		t.byId[c.Id] = c
		if c.Key != "" {
			t.byKey[c.Key] = c
		}
	}
	for _, c := range t.all {
		if c.Parent == nil || t.byId[c.Parent.Id] == nil {
			t.roots = append(t.roots, c)
			continue
		}
		t.children[c.Parent.Id] = append(t.children[c.Parent.Id], c)
	}
	byOrderHint := func(a, b *sdk.Category) int {
		return cmp.Or(cmp.Compare(a.OrderHint, b.OrderHint), cmp.Compare(a.Id, b.Id))
	}
	slices.SortStableFunc(t.roots, byOrderHint)
	for _, list := range t.children {
		slices.SortStableFunc(list, byOrderHint)
	}
	return t
}

func Empty() *Tree {
	return NewTree(nil)
}

func (t *Tree) Len() int {
	return len(t.all)
}

func (t *Tree) ById(id string) (*sdk.Category, bool) {
	c, ok := t.byId[id]
	return c, ok
}

func (t *Tree) ByKey(key string) (*sdk.Category, bool) {
	c, ok := t.byKey[key]
	return c, ok
}

// BySlug finds the category whose slug in the locale equals slug.
func (t *Tree) BySlug(slug string, locale language.Tag) (*sdk.Category, bool) {
	for _, c := range t.all {
		if s, ok := c.Slug.Get(locale); ok && s == slug {
			return c, true
		}
	}
	return nil, false
}

func (t *Tree) Roots() []*sdk.Category {
	return t.roots
}

func (t *Tree) Children(id string) []*sdk.Category {
	return t.children[id]
}

// Ancestors returns the path from the root down to, but excluding, the category.
func (t *Tree) Ancestors(id string) []*sdk.Category {
	ret := []*sdk.Category{}
	c, ok := t.byId[id]
	seen := map[string]struct{}{id: {}}
	for ok && c.Parent != nil {
		if _, loop := seen[c.Parent.Id]; loop {
			break
		}
		seen[c.Parent.Id] = struct{}{}
		c, ok = t.byId[c.Parent.Id]
		if ok {
			ret = append(ret, c)
		}
	}
	slices.Reverse(ret)
	return ret
}

// Subtree returns the category and all of its descendants, depth first.
func (t *Tree) Subtree(id string) []*sdk.Category {
	c, ok := t.byId[id]
	if !ok {
		return nil
	}
	ret := []*sdk.Category{c}
	for _, child := range t.children[id] {
		ret = append(ret, t.Subtree(child.Id)...)
	}
	return ret
}
