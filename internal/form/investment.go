package form

import (
	"fmt"
	"sync"

	"github.com/dvloznov/finance-entry/internal/domain"
)

// actionLayout is the field arrangement of one trading action. A nil
// tickerLabel leaves the ticker label as it was.
type actionLayout struct {
	ticker         bool
	quantity       bool
	fees           bool
	tickerLabel    *string
	priceLabel     string
	tickerRequired bool
}

func label(s string) *string { return &s }

var actionLayouts = map[domain.InvestmentAction]actionLayout{
	domain.ActionBuy: {
		ticker: true, quantity: true, fees: true,
		tickerLabel: label("Ticker"), priceLabel: "Price Per Share USD", tickerRequired: true,
	},
	domain.ActionSell: {
		ticker: true, quantity: true, fees: true,
		tickerLabel: label("Ticker"), priceLabel: "Price Per Share USD", tickerRequired: true,
	},
	domain.ActionDeposit: {
		priceLabel: "Amount USD",
	},
	domain.ActionWithdrawal: {
		priceLabel: "Amount USD",
	},
	domain.ActionDividend: {
		ticker:      true,
		tickerLabel: label("Ticker"), priceLabel: "Dividend Amount USD", tickerRequired: true,
	},
	domain.ActionFeeExpense: {
		ticker:      true,
		tickerLabel: label("Description"), priceLabel: "Expense Amount USD", tickerRequired: true,
	},
}

// ConversionField names an input the conversion calculator listens to.
type ConversionField int

const (
	FieldFromAmount ConversionField = iota
	FieldToAmount
	FieldAccount
	FieldFromCurrency
	FieldToCurrency
)

func (f ConversionField) String() string {
	switch f {
	case FieldFromAmount:
		return "from_amount"
	case FieldToAmount:
		return "to_amount"
	case FieldAccount:
		return "account"
	case FieldFromCurrency:
		return "from_currency"
	case FieldToCurrency:
		return "to_currency"
	}
	return fmt.Sprintf("ConversionField(%d)", int(f))
}

// InvestmentController derives the investment form state from the selected
// action and keeps the conversion rate and fee in step with their inputs.
type InvestmentController struct {
	mu   sync.Mutex
	view *InvestmentView
}

// NewInvestmentController binds a controller to view.
func NewInvestmentController(view *InvestmentView) *InvestmentController {
	return &InvestmentController{view: view}
}

// HandleActionChange lays the form out for action. Every action-dependent
// required flag is cleared and both field groups hidden before the branch for
// action is applied, so nothing survives from the previous action. An
// unknown action leaves that reset state and returns an error.
func (c *InvestmentController) HandleActionChange(action domain.InvestmentAction) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.view
	v.Action = string(action)
	v.TradingFields.Visible = false
	v.ConversionFields.Visible = false
	v.TickerField.Required = false
	v.Price.Required = false
	v.FromAmount.Required = false
	v.ToAmount.Required = false

	if action == domain.ActionMoneyConversion {
		v.ConversionFields.Visible = true
		v.FromAmount.Required = true
		v.ToAmount.Required = true
		return nil
	}

	layout, ok := actionLayouts[action]
	if !ok {
		return fmt.Errorf("HandleActionChange: %w: %q", domain.ErrUnknownAction, action)
	}

	v.TradingFields.Visible = true
	v.Price.Required = true
	v.TickerField.Visible = layout.ticker
	v.QuantityField.Visible = layout.quantity
	v.FeesField.Visible = layout.fees
	if layout.tickerLabel != nil {
		v.TickerField.Label = *layout.tickerLabel
	}
	v.Price.Label = layout.priceLabel
	v.TickerField.Required = layout.tickerRequired
	return nil
}

// SetAccounts replaces the investment account options, selecting the first.
func (c *InvestmentController) SetAccounts(opts []SelectOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Account.Reset(opts...)
}

// UpdateConversionInput stores value into field and recalculates.
func (c *InvestmentController) UpdateConversionInput(field ConversionField, value string) (ConversionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.view
	switch field {
	case FieldFromAmount:
		v.FromAmount.Value = value
	case FieldToAmount:
		v.ToAmount.Value = value
	case FieldAccount:
		v.Account.Value = value
	case FieldFromCurrency:
		v.FromCurrency.Value = value
	case FieldToCurrency:
		v.ToCurrency.Value = value
	default:
		return ConversionResult{}, fmt.Errorf("UpdateConversionInput: unknown field %v", field)
	}
	return c.calculateLocked(), nil
}

// CalculateConversionDetails recomputes the rate and fee from the bound
// inputs. The rate field is written only when a rate was derived and the fee
// field only when a fee was; otherwise both keep their previous values.
func (c *InvestmentController) CalculateConversionDetails() ConversionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calculateLocked()
}

func (c *InvestmentController) calculateLocked() ConversionResult {
	v := c.view
	res := CalculateConversionDetails(ConversionInput{
		FromAmount:   v.FromAmount.Value,
		ToAmount:     v.ToAmount.Value,
		AccountName:  v.Account.SelectedLabel(),
		FromCurrency: v.FromCurrency.Value,
		ToCurrency:   v.ToCurrency.Value,
	})
	if res.Rate.Valid {
		v.ConversionRate.Value = res.RateText()
	}
	if res.Fee.Valid {
		v.ConversionFee.Value = res.FeeText()
	}
	return res
}

// View returns a copy of the bound view.
func (c *InvestmentController) View() InvestmentView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Clone()
}
