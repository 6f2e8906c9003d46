package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/rs/zerolog"
)

const (
	accountLabel     = "Account"
	fromAccountLabel = "From Account"

	// ParentPlaceholder is the label of the disabled first parent option.
	ParentPlaceholder = "-- Select a Parent --"
	// SubCategorySentinel labels the sub-category option that keeps the parent.
	SubCategorySentinel = "-- Select Sub-Category (or use Parent) --"
)

// ErrNoCategorySource is reported when a load is attempted without a source.
var ErrNoCategorySource = errors.New("no category source configured")

// CategorySource looks up the category tree for a transaction type.
type CategorySource interface {
	Categories(ctx context.Context, t domain.TransactionType) (domain.CategoryTree, error)
}

// Load identifies one category fetch issued by a type change. A load is only
// applied while its Generation is still the controller's current one.
type Load struct {
	Type       domain.TransactionType
	Generation uint64
}

// LoadErrorHandler is told about category loads that failed. It must not
// call back into the controller.
type LoadErrorHandler func(t domain.TransactionType, err error)

// TypeController derives the transaction form state from the selected type
// and keeps the two-level category selectors in step with the fetched tree.
type TypeController struct {
	mu          sync.Mutex
	view        *TransactionView
	source      CategorySource
	log         zerolog.Logger
	tree        domain.CategoryTree
	generation  uint64
	onLoadError LoadErrorHandler
}

// NewTypeController binds a controller to view. source may be nil, in which
// case every load fails with ErrNoCategorySource.
func NewTypeController(view *TransactionView, source CategorySource, log zerolog.Logger) *TypeController {
	return &TypeController{
		view:   view,
		source: source,
		log:    log,
	}
}

// OnLoadError registers a handler for failed category loads. Field state is
// never rolled back on failure; the handler only gives callers a way to
// surface the problem.
func (c *TypeController) OnLoadError(fn LoadErrorHandler) {
	c.mu.Lock()
	c.onLoadError = fn
	c.mu.Unlock()
}

// SetType applies t and, for categorised types, fetches and installs its
// category tree. Fetch failures are logged and swallowed; the only error
// returned is for an unknown type.
func (c *TypeController) SetType(ctx context.Context, t domain.TransactionType) error {
	load, fetch, err := c.BeginSetType(t)
	if err != nil || !fetch {
		return err
	}
	tree, err := c.Fetch(ctx, load)
	c.CompleteLoad(load, tree, err)
	return nil
}

// BeginSetType performs the synchronous half of a type change. When the
// type has categories it returns the load to fetch and true.
//
// Every call starts a new generation, so a load issued before this call
// (including one overtaken by a switch to transfer) is discarded on arrival.
func (c *TypeController) BeginSetType(t domain.TransactionType) (Load, bool, error) {
	if !t.Valid() {
		return Load{}, false, fmt.Errorf("BeginSetType: %w: %q", domain.ErrUnknownTransactionType, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	v := c.view
	v.Type = string(t)
	v.Buttons = buttonsFor(t)

	categorised := t.HasCategories()
	v.Description.Visible = categorised
	v.CategoryFields.Visible = categorised
	v.Pillar.Visible = categorised
	v.ToAccount.Visible = !categorised

	v.Description.Required = categorised
	v.ParentCategory.Required = categorised
	v.CategoryFields.Required = categorised
	v.Pillar.Required = categorised
	v.ToAccount.Required = !categorised

	if categorised {
		v.FromAccount.Label = accountLabel
	} else {
		v.FromAccount.Label = fromAccountLabel
	}

	return Load{Type: t, Generation: c.generation}, categorised, nil
}

// Fetch asks the source for the tree of load.Type. It does not touch the view
// and may run on any goroutine.
func (c *TypeController) Fetch(ctx context.Context, load Load) (domain.CategoryTree, error) {
	if c.source == nil {
		return domain.CategoryTree{}, ErrNoCategorySource
	}
	return c.source.Categories(ctx, load.Type)
}

// CompleteLoad installs the result of load. It reports whether the tree was
// applied: stale generations and failures leave the view untouched.
func (c *TypeController) CompleteLoad(load Load, tree domain.CategoryTree, err error) bool {
	c.mu.Lock()

	log := c.log.With().
		Str("transaction_type", load.Type.String()).
		Uint64("generation", load.Generation).
		Logger()

	if current := c.generation; load.Generation != current {
		c.mu.Unlock()
		log.Debug().Uint64("current_generation", current).Msg("Discarding stale category load")
		return false
	}

	if err == nil {
		err = tree.Validate()
	}
	if err != nil {
		handler := c.onLoadError
		c.mu.Unlock()
		log.Error().Err(err).Msg("Failed to fetch categories")
		if handler != nil {
			handler(load.Type, err)
		}
		return false
	}
	defer c.mu.Unlock()

	c.tree = tree
	v := c.view
	opts := make([]SelectOption, 0, len(tree.Parents)+1)
	opts = append(opts, SelectOption{Value: "", Label: ParentPlaceholder, Disabled: true})
	for _, p := range tree.Parents {
		opts = append(opts, SelectOption{Value: p.ID, Label: p.Name})
	}
	v.ParentCategory.Reset(opts...)
	v.SubCategoryWrapper.Visible = false
	v.SubCategory.Clear()
	v.CategoryID = ""

	log.Debug().Int("parents", len(tree.Parents)).Msg("Installed category tree")
	return true
}

// OnParentCategoryChange reacts to a parent selection. The parent becomes the
// tentative category; its children, if any, populate the sub-category
// selector behind a sentinel option that keeps the parent.
func (c *TypeController) OnParentCategoryChange(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.view
	v.ParentCategory.Value = parentID
	v.CategoryID = parentID
	v.SubCategory.Clear()

	children := c.tree.Children(parentID)
	if len(children) == 0 {
		v.SubCategoryWrapper.Visible = false
		return
	}

	opts := make([]SelectOption, 0, len(children)+1)
	opts = append(opts, SelectOption{Value: parentID, Label: SubCategorySentinel})
	for _, child := range children {
		opts = append(opts, SelectOption{Value: child.ID, Label: child.Name})
	}
	v.SubCategory.Reset(opts...)
	v.SubCategoryWrapper.Visible = true
}

// OnSubCategoryChange records a sub-category pick. An empty value is ignored.
func (c *TypeController) OnSubCategoryChange(value string) {
	if value == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.SubCategory.Value = value
	c.view.CategoryID = value
}

// Generation returns the current type-change generation.
func (c *TypeController) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Tree returns the installed category tree.
func (c *TypeController) Tree() domain.CategoryTree {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree
}

// View returns a copy of the bound view.
func (c *TypeController) View() TransactionView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Clone()
}
