package form

import (
	"context"
	"sync"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/rs/zerolog"
)

// Tab names of the two form sections.
const (
	TabExpense    = "expense"
	TabInvestment = "investment"
)

// Tabs tracks which form section is shown.
type Tabs struct {
	mu       sync.Mutex
	sections []string
	active   string
}

// NewTabs returns tabs over names with none active.
func NewTabs(names ...string) *Tabs {
	return &Tabs{sections: append([]string(nil), names...)}
}

// Show activates name. Unknown names are ignored and report false.
func (t *Tabs) Show(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.sections {
		if s == name {
			t.active = name
			return true
		}
	}
	return false
}

// Active returns the active section name.
func (t *Tabs) Active() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Page wires the tabs and both controllers over freshly bound views.
type Page struct {
	Tabs        *Tabs
	Transaction *TypeController
	Investment  *InvestmentController
}

// PageView is a point-in-time copy of the whole page state.
type PageView struct {
	Tab         string
	Transaction TransactionView
	Investment  InvestmentView
}

// NewPage builds a page whose category selectors load from source.
func NewPage(source CategorySource, log zerolog.Logger) *Page {
	return &Page{
		Tabs:        NewTabs(TabExpense, TabInvestment),
		Transaction: NewTypeController(NewTransactionView(), source, log),
		Investment:  NewInvestmentController(NewInvestmentView()),
	}
}

// Init puts the page into its initial state: expense type, expense tab and
// the Buy layout on the investment form.
func (p *Page) Init(ctx context.Context) error {
	if err := p.Transaction.SetType(ctx, domain.TypeExpense); err != nil {
		return err
	}
	p.Tabs.Show(TabExpense)
	return p.Investment.HandleActionChange(domain.ActionBuy)
}

// ShowTab switches the visible form section.
func (p *Page) ShowTab(name string) bool {
	return p.Tabs.Show(name)
}

// Snapshot copies the current state of the page.
func (p *Page) Snapshot() PageView {
	return PageView{
		Tab:         p.Tabs.Active(),
		Transaction: p.Transaction.View(),
		Investment:  p.Investment.View(),
	}
}
