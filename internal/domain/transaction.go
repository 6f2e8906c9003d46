package domain

import (
	"fmt"
	"strings"
)

// TransactionType is the kind of entry logged from the transaction tab.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// AllTransactionTypes returns the types in the order their selector buttons appear.
func AllTransactionTypes() []TransactionType {
	return []TransactionType{TypeExpense, TypeIncome, TypeTransfer}
}

// ParseTransactionType matches s case-insensitively against the known types.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// HasCategories reports whether entries of this type are categorised.
// Transfers move money between accounts and carry no category or pillar.
func (t TransactionType) HasCategories() bool {
	return t == TypeExpense || t == TypeIncome
}

func (t TransactionType) String() string { return string(t) }

// InvestmentAction is the action selected on the investment tab.
type InvestmentAction string

const (
	ActionBuy             InvestmentAction = "Buy"
	ActionSell            InvestmentAction = "Sell"
	ActionDeposit         InvestmentAction = "Deposit"
	ActionWithdrawal      InvestmentAction = "Withdrawal"
	ActionDividend        InvestmentAction = "Dividend"
	ActionFeeExpense      InvestmentAction = "Fee/Expense"
	ActionMoneyConversion InvestmentAction = "Money Conversion"
)

// AllInvestmentActions returns every action in selector order.
func AllInvestmentActions() []InvestmentAction {
	return []InvestmentAction{
		ActionBuy,
		ActionSell,
		ActionDeposit,
		ActionWithdrawal,
		ActionDividend,
		ActionFeeExpense,
		ActionMoneyConversion,
	}
}

// ParseInvestmentAction matches s against the action display names.
// Matching is exact apart from surrounding whitespace, falling back to a
// case-insensitive comparison.
func ParseInvestmentAction(s string) (InvestmentAction, error) {
	trimmed := strings.TrimSpace(s)
	for _, a := range AllInvestmentActions() {
		if string(a) == trimmed {
			return a, nil
		}
	}
	for _, a := range AllInvestmentActions() {
		if strings.EqualFold(string(a), trimmed) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Valid reports whether a is one of the known actions.
func (a InvestmentAction) Valid() bool {
	for _, known := range AllInvestmentActions() {
		if a == known {
			return true
		}
	}
	return false
}

func (a InvestmentAction) String() string { return string(a) }
