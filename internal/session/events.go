package session

import (
	"errors"
	"fmt"

	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/form"
)

// ErrUnknownTab is reported for a ShowTabEvent naming no section.
var ErrUnknownTab = errors.New("unknown tab")

// Event is a user interaction applied to the page by the loop.
type Event interface {
	apply(l *Loop) error
}

// SetTypeEvent selects a transaction type. Category loads run off the loop
// and are posted back when done.
type SetTypeEvent struct {
	Type domain.TransactionType
}

func (e SetTypeEvent) apply(l *Loop) error {
	load, fetch, err := l.page.Transaction.BeginSetType(e.Type)
	if err != nil || !fetch {
		return err
	}
	l.startFetch(load)
	return nil
}

// ParentCategoryEvent selects a parent category.
type ParentCategoryEvent struct {
	ParentID string
}

func (e ParentCategoryEvent) apply(l *Loop) error {
	l.page.Transaction.OnParentCategoryChange(e.ParentID)
	return nil
}

// SubCategoryEvent selects a sub-category.
type SubCategoryEvent struct {
	Value string
}

func (e SubCategoryEvent) apply(l *Loop) error {
	l.page.Transaction.OnSubCategoryChange(e.Value)
	return nil
}

// ActionEvent selects an investment action.
type ActionEvent struct {
	Action domain.InvestmentAction
}

func (e ActionEvent) apply(l *Loop) error {
	return l.page.Investment.HandleActionChange(e.Action)
}

// ConversionInputEvent edits one of the money conversion inputs.
type ConversionInputEvent struct {
	Field form.ConversionField
	Value string
}

func (e ConversionInputEvent) apply(l *Loop) error {
	_, err := l.page.Investment.UpdateConversionInput(e.Field, e.Value)
	return err
}

// ShowTabEvent switches the visible form section.
type ShowTabEvent struct {
	Tab string
}

func (e ShowTabEvent) apply(l *Loop) error {
	if !l.page.ShowTab(e.Tab) {
		return fmt.Errorf("%w: %q", ErrUnknownTab, e.Tab)
	}
	return nil
}

type loadCompleted struct {
	load form.Load
	tree domain.CategoryTree
	err  error
}

func (e loadCompleted) apply(l *Loop) error {
	applied := l.page.Transaction.CompleteLoad(e.load, e.tree, e.err)
	l.mu.RLock()
	fn := l.onLoad
	l.mu.RUnlock()
	if fn != nil {
		fn(e.load, applied)
	}
	return nil
}

type snapshotRequest struct {
	reply chan form.PageView
}

func (e snapshotRequest) apply(l *Loop) error {
	e.reply <- l.page.Snapshot()
	return nil
}
