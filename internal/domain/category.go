package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Category is a single node of the two-level category forest.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryTree is the category forest for one transaction type, in the
// shape served by the category lookup endpoint.
//
// Every key of ChildrenMap must name a parent present in Parents. A parent
// without an entry (or with an empty slice) has no sub-categories.
type CategoryTree struct {
	Parents     []Category            `json:"parents"`
	ChildrenMap map[string][]Category `json:"children_map"`
}

// Children returns the sub-categories of parentID, or nil.
func (t CategoryTree) Children(parentID string) []Category {
	if t.ChildrenMap == nil {
		return nil
	}
	return t.ChildrenMap[parentID]
}

// HasParent reports whether id is one of the tree's parents.
func (t CategoryTree) HasParent(id string) bool {
	for _, p := range t.Parents {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Validate checks the parent/children invariant.
func (t CategoryTree) Validate() error {
	parents := make(map[string]bool, len(t.Parents))
	for _, p := range t.Parents {
		if p.ID == "" {
			return fmt.Errorf("%w: parent %q has an empty id", ErrInvalidCategoryTree, p.Name)
		}
		parents[p.ID] = true
	}
	for parentID := range t.ChildrenMap {
		if !parents[parentID] {
			return fmt.Errorf("%w: children_map key %q is not a parent", ErrInvalidCategoryTree, parentID)
		}
	}
	return nil
}

// Normalized returns a copy with nil collections replaced by empty ones, so
// the JSON encoding never carries null.
func (t CategoryTree) Normalized() CategoryTree {
	out := CategoryTree{
		Parents:     make([]Category, len(t.Parents)),
		ChildrenMap: make(map[string][]Category, len(t.ChildrenMap)),
	}
	copy(out.Parents, t.Parents)
	for k, v := range t.ChildrenMap {
		children := make([]Category, len(v))
		copy(children, v)
		out.ChildrenMap[k] = children
	}
	return out
}

// SortCategories orders categories by name, with any category whose name
// mentions "other" pushed to the end.
func SortCategories(cats []Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		oi, oj := isOther(cats[i].Name), isOther(cats[j].Name)
		if oi != oj {
			return !oi
		}
		return cats[i].Name < cats[j].Name
	})
}

func isOther(name string) bool {
	return strings.Contains(strings.ToLower(name), "other")
}
