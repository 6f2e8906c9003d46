package categories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dvloznov/finance-entry/internal/domain"
)

var (
	// ErrUnsupportedType is returned for types that carry no categories.
	ErrUnsupportedType = errors.New("transaction type has no categories")
	// ErrServiceStatus is returned when the category service answers with a
	// non-2xx status.
	ErrServiceStatus = errors.New("category service error")
)

// Source looks up the category tree for a transaction type.
type Source interface {
	Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error)
}

// Record is one category as stored in a backing database.
type Record struct {
	ID       string
	Name     string
	ParentID string
	// Type is the transaction type the category belongs to. Empty matches
	// every type.
	Type string
}

// BuildTree filters records to t and assembles the two-level tree. Parents
// and each child list are sorted with "other" categories last. Children of a
// parent that did not survive the filter are dropped.
func BuildTree(records []Record, t domain.TransactionType) domain.CategoryTree {
	tree := domain.CategoryTree{
		Parents:     []domain.Category{},
		ChildrenMap: map[string][]domain.Category{},
	}

	var kept []Record
	parents := make(map[string]bool)
	for _, r := range records {
		if r.Type != "" && !strings.EqualFold(r.Type, t.String()) {
			continue
		}
		kept = append(kept, r)
		if r.ParentID == "" {
			tree.Parents = append(tree.Parents, domain.Category{ID: r.ID, Name: r.Name})
			parents[r.ID] = true
		}
	}

	for _, r := range kept {
		if r.ParentID == "" || !parents[r.ParentID] {
			continue
		}
		tree.ChildrenMap[r.ParentID] = append(tree.ChildrenMap[r.ParentID], domain.Category{ID: r.ID, Name: r.Name})
	}

	domain.SortCategories(tree.Parents)
	for _, children := range tree.ChildrenMap {
		domain.SortCategories(children)
	}
	return tree
}

func checkType(op string, t domain.TransactionType) error {
	if !t.Valid() {
		return fmt.Errorf("%s: %w: %q", op, domain.ErrUnknownTransactionType, t)
	}
	if !t.HasCategories() {
		return fmt.Errorf("%s: %w: %s", op, ErrUnsupportedType, t)
	}
	return nil
}
