// Package render draws form views as styled terminal listings.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dvloznov/finance-entry/internal/domain"
	"github.com/dvloznov/finance-entry/internal/form"
)

const (
	hiddenMarker   = "(hidden)"
	requiredMarker = "*"
	emptyValue     = "-"
)

func row(label string, required, visible bool, value string) string {
	if !visible {
		return dimStyle.Render(labelStyle.Render(label) + " " + hiddenMarker)
	}
	if required {
		label += " " + requiredStyle.Render(requiredMarker)
	}
	if value == "" {
		value = dimStyle.Render(emptyValue)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), " ", value)
}

func groupRow(g form.FieldGroup, value string) string {
	return row(g.Label, g.Required, g.Visible, value)
}

func options(s form.SelectField) string {
	if len(s.Options) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.Options))
	for _, o := range s.Options {
		text := o.Label
		switch {
		case o.Value == s.Value:
			text = selectedStyle.Render("> " + text)
		case o.Disabled:
			text = dimStyle.Render("  " + text)
		default:
			text = "  " + text
		}
		lines = append(lines, text)
	}
	return strings.Join(lines, "\n")
}

func typeTabs(active domain.TransactionType) string {
	var tabs []string
	for _, t := range domain.AllTransactionTypes() {
		name := strings.ToUpper(t.String()[:1]) + t.String()[1:]
		if t == active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Transaction renders the expense/income/transfer form.
func Transaction(v form.TransactionView) string {
	rows := []string{
		typeTabs(v.Buttons.Active()),
		"",
		groupRow(v.Description, ""),
		groupRow(v.CategoryFields, options(v.ParentCategory)),
		groupRow(v.SubCategoryWrapper, options(v.SubCategory)),
		groupRow(v.Pillar, ""),
		groupRow(v.FromAccount, ""),
		groupRow(v.ToAccount, ""),
		row("Category ID", false, true, v.CategoryID),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Transaction"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	))
}

// Investment renders the investment form.
func Investment(v form.InvestmentView) string {
	rows := []string{
		row("Action", true, true, v.Action),
		"",
	}

	trading := v.TradingFields.Visible
	rows = append(rows,
		row(v.TickerField.Label, v.TickerField.Required, trading && v.TickerField.Visible, ""),
		row(v.QuantityField.Label, v.QuantityField.Required, trading && v.QuantityField.Visible, ""),
		row(v.Price.Label, v.Price.Required, trading, v.Price.Value),
		row(v.FeesField.Label, v.FeesField.Required, trading && v.FeesField.Visible, ""),
	)

	conv := v.ConversionFields.Visible
	rows = append(rows,
		row("Account", v.Account.Required, true, v.Account.SelectedLabel()),
		row(v.FromAmount.Label, v.FromAmount.Required, conv, v.FromAmount.Value),
		row("From Currency", false, conv, v.FromCurrency.Value),
		row(v.ToAmount.Label, v.ToAmount.Required, conv, v.ToAmount.Value),
		row("To Currency", false, conv, v.ToCurrency.Value),
		row(v.ConversionRate.Label, false, conv, v.ConversionRate.Value),
		row(v.ConversionFee.Label, false, conv, v.ConversionFee.Value),
	)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Investment"),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	))
}

// Page renders the section tabs and the active section.
func Page(v form.PageView) string {
	var tabs []string
	for _, name := range []string{form.TabExpense, form.TabInvestment} {
		if name == v.Tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	body := Transaction(v.Transaction)
	if v.Tab == form.TabInvestment {
		body = Investment(v.Investment)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		body,
	)
}
