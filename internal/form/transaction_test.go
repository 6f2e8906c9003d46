package form

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/logger"
)

// fakeSource returns canned trees per type and records every call.
type fakeSource struct {
	mu    sync.Mutex
	trees map[domain.TransactionType]domain.CategoryTree
	err   error
	calls []domain.TransactionType
}

func (f *fakeSource) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, t)
	if f.err != nil {
		return domain.CategoryTree{}, f.err
	}
	return f.trees[t], nil
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var (
	expenseTree = domain.CategoryTree{
		Parents: []domain.Category{{ID: "5", Name: "Housing"}, {ID: "6", Name: "Food"}},
		ChildrenMap: map[string][]domain.Category{
			"5": {{ID: "7", Name: "Rent"}},
		},
	}
	incomeTree = domain.CategoryTree{
		Parents: []domain.Category{{ID: "20", Name: "Salary"}},
	}
)

func newTestController(src CategorySource) (*TypeController, *TransactionView, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	view := NewTransactionView()
	return NewTypeController(view, src, logger.NewWithWriter(buf)), view, buf
}

func TestSetType_FieldStates(t *testing.T) {
	tests := []struct {
		typ              domain.TransactionType
		categorised      bool
		fromAccountLabel string
	}{
		{domain.TypeExpense, true, "Account"},
		{domain.TypeIncome, true, "Account"},
		{domain.TypeTransfer, false, "From Account"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{
				domain.TypeExpense: expenseTree,
				domain.TypeIncome:  incomeTree,
			}}
			c, view, _ := newTestController(src)

			if err := c.SetType(context.Background(), tt.typ); err != nil {
				t.Fatalf("SetType() error = %v", err)
			}

			if view.Type != tt.typ.String() {
				t.Errorf("Type = %q, want %q", view.Type, tt.typ)
			}
			if view.Buttons.ActiveCount() != 1 || view.Buttons.Active() != tt.typ {
				t.Errorf("Buttons = %+v, want only %q active", view.Buttons, tt.typ)
			}

			groups := map[string]FieldGroup{
				"description": view.Description,
				"category":    view.CategoryFields,
				"pillar":      view.Pillar,
			}
			for name, g := range groups {
				if g.Visible != tt.categorised {
					t.Errorf("%s visible = %v, want %v", name, g.Visible, tt.categorised)
				}
				if g.Required != tt.categorised {
					t.Errorf("%s required = %v, want %v", name, g.Required, tt.categorised)
				}
			}
			if view.ParentCategory.Required != tt.categorised {
				t.Errorf("parent category required = %v, want %v", view.ParentCategory.Required, tt.categorised)
			}
			if view.ToAccount.Visible == tt.categorised || view.ToAccount.Required == tt.categorised {
				t.Errorf("to account = %+v, want visible/required %v", view.ToAccount, !tt.categorised)
			}
			if view.FromAccount.Label != tt.fromAccountLabel {
				t.Errorf("from account label = %q, want %q", view.FromAccount.Label, tt.fromAccountLabel)
			}

			wantCalls := 0
			if tt.categorised {
				wantCalls = 1
			}
			if got := src.callCount(); got != wantCalls {
				t.Errorf("source calls = %d, want %d", got, wantCalls)
			}
		})
	}
}

func TestSetType_UnknownType(t *testing.T) {
	c, view, _ := newTestController(&fakeSource{})

	err := c.SetType(context.Background(), "refund")
	if !errors.Is(err, domain.ErrUnknownTransactionType) {
		t.Fatalf("expected ErrUnknownTransactionType, got %v", err)
	}
	if view.Type != "" {
		t.Errorf("view should be untouched, Type = %q", view.Type)
	}
	if c.Generation() != 0 {
		t.Errorf("generation = %d, want 0", c.Generation())
	}
}

func TestSetType_InstallsCategoryTree(t *testing.T) {
	src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{domain.TypeExpense: expenseTree}}
	c, view, _ := newTestController(src)

	view.CategoryID = "stale"
	view.SubCategoryWrapper.Visible = true
	view.SubCategory.Reset(SelectOption{Value: "x", Label: "X"})

	if err := c.SetType(context.Background(), domain.TypeExpense); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}

	opts := view.ParentCategory.Options
	if len(opts) != 3 {
		t.Fatalf("expected placeholder + 2 parents, got %d options", len(opts))
	}
	if opts[0].Value != "" || opts[0].Label != ParentPlaceholder || !opts[0].Disabled {
		t.Errorf("unexpected placeholder %+v", opts[0])
	}
	if opts[1].Value != "5" || opts[1].Label != "Housing" || opts[2].Value != "6" {
		t.Errorf("unexpected parent options %+v", opts[1:])
	}
	if view.ParentCategory.Value != "" {
		t.Errorf("parent selector should rest on the placeholder, got %q", view.ParentCategory.Value)
	}
	if view.SubCategoryWrapper.Visible || len(view.SubCategory.Options) != 0 {
		t.Error("sub-category selector should be hidden and empty")
	}
	if view.CategoryID != "" {
		t.Errorf("CategoryID = %q, want empty", view.CategoryID)
	}
}

func TestSetType_FetchFailureKeepsPriorOptions(t *testing.T) {
	src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{domain.TypeExpense: expenseTree}}
	c, view, buf := newTestController(src)

	if err := c.SetType(context.Background(), domain.TypeExpense); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	before := view.Clone()

	var reported error
	c.OnLoadError(func(typ domain.TransactionType, err error) {
		if typ != domain.TypeIncome {
			t.Errorf("reported type = %q, want income", typ)
		}
		reported = err
	})

	src.err = errors.New("connection refused")
	if err := c.SetType(context.Background(), domain.TypeIncome); err != nil {
		t.Fatalf("SetType() should swallow fetch errors, got %v", err)
	}

	if len(view.ParentCategory.Options) != len(before.ParentCategory.Options) {
		t.Fatalf("parent options changed: %+v", view.ParentCategory.Options)
	}
	for i, o := range before.ParentCategory.Options {
		if view.ParentCategory.Options[i] != o {
			t.Errorf("option %d = %+v, want %+v", i, view.ParentCategory.Options[i], o)
		}
	}
	if view.Type != "income" {
		t.Errorf("Type = %q, want income", view.Type)
	}
	if reported == nil {
		t.Error("expected load error handler to be called")
	}
	if !strings.Contains(buf.String(), "Failed to fetch categories") {
		t.Errorf("expected error log, got: %s", buf.String())
	}
}

func TestSetType_InvalidTreeTreatedAsFailure(t *testing.T) {
	bad := domain.CategoryTree{
		Parents:     []domain.Category{{ID: "1", Name: "A"}},
		ChildrenMap: map[string][]domain.Category{"9": {{ID: "2", Name: "B"}}},
	}
	src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{domain.TypeExpense: bad}}
	c, view, _ := newTestController(src)

	if err := c.SetType(context.Background(), domain.TypeExpense); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	if len(view.ParentCategory.Options) != 0 {
		t.Errorf("invalid tree should not be installed, got %+v", view.ParentCategory.Options)
	}
}

func TestCompleteLoad_DiscardsStaleGeneration(t *testing.T) {
	c, view, _ := newTestController(nil)

	first, fetch, err := c.BeginSetType(domain.TypeExpense)
	if err != nil || !fetch {
		t.Fatalf("BeginSetType(expense) = %v, %v", fetch, err)
	}
	second, _, _ := c.BeginSetType(domain.TypeIncome)

	if !c.CompleteLoad(second, incomeTree, nil) {
		t.Fatal("current load should apply")
	}
	if c.CompleteLoad(first, expenseTree, nil) {
		t.Fatal("stale load should be discarded")
	}

	if got := view.ParentCategory.Options; len(got) != 2 || got[1].Value != "20" {
		t.Errorf("expected income parents to remain, got %+v", got)
	}
	if c.Tree().HasParent("5") {
		t.Error("stale tree should not be installed")
	}
}

func TestCompleteLoad_TransferInvalidatesInFlightLoad(t *testing.T) {
	c, view, _ := newTestController(nil)

	load, _, _ := c.BeginSetType(domain.TypeExpense)
	if _, fetch, _ := c.BeginSetType(domain.TypeTransfer); fetch {
		t.Fatal("transfer should not fetch")
	}

	if c.CompleteLoad(load, expenseTree, nil) {
		t.Error("load issued before the transfer switch should be discarded")
	}
	if len(view.ParentCategory.Options) != 0 {
		t.Errorf("unexpected options %+v", view.ParentCategory.Options)
	}
}

// blockingSource holds expense fetches until released.
type blockingSource struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingSource) Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error) {
	if t == domain.TypeExpense {
		close(b.started)
		<-b.release
		return expenseTree, nil
	}
	return incomeTree, nil
}

func TestSetType_OverlappingFetchesLatestTypeWins(t *testing.T) {
	src := &blockingSource{release: make(chan struct{}), started: make(chan struct{})}
	c, _, _ := newTestController(src)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.SetType(context.Background(), domain.TypeExpense)
	}()

	<-src.started
	if err := c.SetType(context.Background(), domain.TypeIncome); err != nil {
		t.Fatalf("SetType(income) error = %v", err)
	}
	close(src.release)
	<-done

	view := c.View()
	if view.Type != "income" {
		t.Errorf("Type = %q, want income", view.Type)
	}
	if got := view.ParentCategory.Options; len(got) != 2 || got[1].Label != "Salary" {
		t.Errorf("late expense response should be discarded, got %+v", got)
	}
}

func TestOnParentCategoryChange(t *testing.T) {
	src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{domain.TypeExpense: expenseTree}}
	c, view, _ := newTestController(src)
	if err := c.SetType(context.Background(), domain.TypeExpense); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}

	c.OnParentCategoryChange("5")

	if !view.SubCategoryWrapper.Visible {
		t.Fatal("sub-category group should be visible")
	}
	opts := view.SubCategory.Options
	if len(opts) != 2 {
		t.Fatalf("expected 2 options, got %+v", opts)
	}
	if opts[0].Value != "5" || opts[0].Label != SubCategorySentinel {
		t.Errorf("first option = %+v", opts[0])
	}
	if opts[1].Value != "7" || opts[1].Label != "Rent" {
		t.Errorf("second option = %+v", opts[1])
	}
	if view.CategoryID != "5" {
		t.Errorf("CategoryID = %q, want 5", view.CategoryID)
	}

	c.OnSubCategoryChange("7")
	if view.CategoryID != "7" {
		t.Errorf("CategoryID = %q, want 7", view.CategoryID)
	}

	c.OnSubCategoryChange("")
	if view.CategoryID != "7" {
		t.Errorf("empty selection should be a no-op, CategoryID = %q", view.CategoryID)
	}

	c.OnParentCategoryChange("6")
	if view.SubCategoryWrapper.Visible {
		t.Error("parent without children should hide the sub-category group")
	}
	if len(view.SubCategory.Options) != 0 {
		t.Errorf("sub-category selector should be empty, got %+v", view.SubCategory.Options)
	}
	if view.CategoryID != "6" {
		t.Errorf("CategoryID = %q, want 6", view.CategoryID)
	}
}

func TestSetType_ResetsSelectedCategory(t *testing.T) {
	src := &fakeSource{trees: map[domain.TransactionType]domain.CategoryTree{
		domain.TypeExpense: expenseTree,
		domain.TypeIncome:  incomeTree,
	}}
	c, view, _ := newTestController(src)
	ctx := context.Background()

	_ = c.SetType(ctx, domain.TypeExpense)
	c.OnParentCategoryChange("5")
	c.OnSubCategoryChange("7")

	_ = c.SetType(ctx, domain.TypeIncome)
	if view.CategoryID != "" {
		t.Errorf("CategoryID = %q, want empty after type change", view.CategoryID)
	}
	if view.SubCategoryWrapper.Visible {
		t.Error("sub-category group should be hidden after type change")
	}
}

func TestSetType_NoSource(t *testing.T) {
	c, view, buf := newTestController(nil)

	if err := c.SetType(context.Background(), domain.TypeExpense); err != nil {
		t.Fatalf("SetType() error = %v", err)
	}
	if view.Type != "expense" {
		t.Errorf("Type = %q", view.Type)
	}
	if !strings.Contains(buf.String(), ErrNoCategorySource.Error()) {
		t.Errorf("expected missing source to be logged, got: %s", buf.String())
	}
}
