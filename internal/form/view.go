package form

import "github.com/dvloznov/finance-entry/internal/domain"

// FieldGroup is the derived state of a field wrapper and the input it holds.
// It is recomputed on every transition, never merged.
type FieldGroup struct {
	Visible  bool
	Required bool
	Label    string
}

// Input is a free-text or numeric input.
type Input struct {
	Value    string
	Required bool
	Label    string
}

// SelectOption is one entry of a select control.
type SelectOption struct {
	Value    string
	Label    string
	Disabled bool
}

// SelectField is a select control with its options and current value.
type SelectField struct {
	Options  []SelectOption
	Value    string
	Required bool
}

// Reset replaces the options and selects the first one, or nothing when
// opts is empty.
func (s *SelectField) Reset(opts ...SelectOption) {
	s.Options = append([]SelectOption(nil), opts...)
	s.Value = ""
	if len(s.Options) > 0 {
		s.Value = s.Options[0].Value
	}
}

// Clear removes every option.
func (s *SelectField) Clear() {
	s.Options = nil
	s.Value = ""
}

// SelectedLabel returns the display text of the selected option.
func (s *SelectField) SelectedLabel() string {
	for _, o := range s.Options {
		if o.Value == s.Value {
			return o.Label
		}
	}
	return ""
}

func (s SelectField) clone() SelectField {
	s.Options = append([]SelectOption(nil), s.Options...)
	return s
}

// TypeButtons holds the active indicator of the three type selector buttons.
type TypeButtons struct {
	Expense  bool
	Income   bool
	Transfer bool
}

// Active returns the type whose button is lit, or "" if none is.
func (b TypeButtons) Active() domain.TransactionType {
	switch {
	case b.Expense:
		return domain.TypeExpense
	case b.Income:
		return domain.TypeIncome
	case b.Transfer:
		return domain.TypeTransfer
	}
	return ""
}

// ActiveCount returns how many buttons are lit.
func (b TypeButtons) ActiveCount() int {
	n := 0
	for _, on := range []bool{b.Expense, b.Income, b.Transfer} {
		if on {
			n++
		}
	}
	return n
}

func buttonsFor(t domain.TransactionType) TypeButtons {
	return TypeButtons{
		Expense:  t == domain.TypeExpense,
		Income:   t == domain.TypeIncome,
		Transfer: t == domain.TypeTransfer,
	}
}

// TransactionView binds every logical field of the expense/income/transfer
// form. Type and CategoryID are the hidden canonical fields submitted with
// the form.
type TransactionView struct {
	Type    string
	Buttons TypeButtons

	Description        FieldGroup
	CategoryFields     FieldGroup
	ParentCategory     SelectField
	SubCategoryWrapper FieldGroup
	SubCategory        SelectField
	Pillar             FieldGroup
	FromAccount        FieldGroup
	ToAccount          FieldGroup

	CategoryID string
}

// NewTransactionView returns the bindings in their pre-initialisation state.
func NewTransactionView() *TransactionView {
	return &TransactionView{
		Description:    FieldGroup{Visible: true, Label: "Description"},
		CategoryFields: FieldGroup{Visible: true, Label: "Category"},
		Pillar:         FieldGroup{Visible: true, Label: "Pillar"},
		FromAccount:    FieldGroup{Visible: true, Required: true, Label: accountLabel},
		ToAccount:      FieldGroup{Label: "To Account"},
		SubCategoryWrapper: FieldGroup{
			Label: "Sub-Category",
		},
	}
}

// Clone returns a deep copy.
func (v TransactionView) Clone() TransactionView {
	v.ParentCategory = v.ParentCategory.clone()
	v.SubCategory = v.SubCategory.clone()
	return v
}

// InvestmentView binds the fields of the investment form.
type InvestmentView struct {
	Action string

	TradingFields    FieldGroup
	ConversionFields FieldGroup

	TickerField   FieldGroup
	QuantityField FieldGroup
	FeesField     FieldGroup
	Price         Input

	Account        SelectField
	FromAmount     Input
	ToAmount       Input
	FromCurrency   SelectField
	ToCurrency     SelectField
	ConversionRate Input
	ConversionFee  Input
}

// Currencies offered by the conversion currency selectors.
var Currencies = []string{"ILS", "USD"}

// NewInvestmentView returns the bindings in their pre-initialisation state.
func NewInvestmentView() *InvestmentView {
	v := &InvestmentView{
		TradingFields:    FieldGroup{Visible: true},
		ConversionFields: FieldGroup{},
		TickerField:      FieldGroup{Visible: true, Label: "Ticker"},
		QuantityField:    FieldGroup{Visible: true, Label: "Quantity"},
		FeesField:        FieldGroup{Visible: true, Label: "Fees USD"},
		Price:            Input{Label: "Price Per Share USD"},
		FromAmount:       Input{Label: "From Amount"},
		ToAmount:         Input{Label: "To Amount"},
		ConversionRate:   Input{Label: "Conversion Rate"},
		ConversionFee:    Input{Label: "Conversion Fee USD"},
	}
	opts := make([]SelectOption, 0, len(Currencies))
	for _, c := range Currencies {
		opts = append(opts, SelectOption{Value: c, Label: c})
	}
	v.FromCurrency.Reset(opts...)
	v.ToCurrency.Reset(opts...)
	v.ToCurrency.Value = "USD"
	return v
}

// Clone returns a deep copy.
func (v InvestmentView) Clone() InvestmentView {
	v.Account = v.Account.clone()
	v.FromCurrency = v.FromCurrency.clone()
	v.ToCurrency = v.ToCurrency.clone()
	return v
}
