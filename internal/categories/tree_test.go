package categories

import (
	"testing"

	"github.com/dvloznov/finance-entry/internal/domain"
)

func TestBuildTree(t *testing.T) {
	records := []Record{
		{ID: "p1", Name: "Other", Type: "Expense"},
		{ID: "p2", Name: "Housing", Type: "Expense"},
		{ID: "p3", Name: "Salary", Type: "Income"},
		{ID: "p4", Name: "Food"},
		{ID: "c1", Name: "Utilities", ParentID: "p2", Type: "Expense"},
		{ID: "c2", Name: "Other housing", ParentID: "p2", Type: "Expense"},
		{ID: "c3", Name: "Rent", ParentID: "p2", Type: "Expense"},
		{ID: "c4", Name: "Bonus", ParentID: "p3", Type: "Income"},
		{ID: "c5", Name: "Orphan", ParentID: "missing", Type: "Expense"},
	}

	tree := BuildTree(records, domain.TypeExpense)

	wantParents := []string{"Food", "Housing", "Other"}
	if len(tree.Parents) != len(wantParents) {
		t.Fatalf("parents = %+v, want %v", tree.Parents, wantParents)
	}
	for i, name := range wantParents {
		if tree.Parents[i].Name != name {
			t.Errorf("parent %d = %q, want %q", i, tree.Parents[i].Name, name)
		}
	}

	children := tree.Children("p2")
	wantChildren := []string{"Rent", "Utilities", "Other housing"}
	if len(children) != len(wantChildren) {
		t.Fatalf("children of p2 = %+v", children)
	}
	for i, name := range wantChildren {
		if children[i].Name != name {
			t.Errorf("child %d = %q, want %q", i, children[i].Name, name)
		}
	}

	if _, ok := tree.ChildrenMap["p3"]; ok {
		t.Error("income children should be filtered out")
	}
	if _, ok := tree.ChildrenMap["missing"]; ok {
		t.Error("orphans should be dropped")
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("built tree should be valid: %v", err)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(nil, domain.TypeIncome)
	if tree.Parents == nil || tree.ChildrenMap == nil {
		t.Error("empty tree should have non-nil collections")
	}
}
