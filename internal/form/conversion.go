package form

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	rateDecimals = 6
	feeDecimals  = 2

	// Amounts outside these bounds are treated as not a number.
	maxAmountLen      = 64
	maxAmountExponent = 28
)

// flatConversionFee is charged per ILS->USD conversion at IBKR, in USD.
var flatConversionFee = decimal.NewFromInt(10)

// ConversionInput is what the calculator reads from the conversion fields.
type ConversionInput struct {
	FromAmount   string
	ToAmount     string
	AccountName  string
	FromCurrency string
	ToCurrency   string
}

// ConversionResult holds the derived rate and fee. Either may be unset.
type ConversionResult struct {
	Rate decimal.NullDecimal
	Fee  decimal.NullDecimal
}

// RateText formats the rate the way the rate field stores it.
func (r ConversionResult) RateText() string {
	if !r.Rate.Valid {
		return ""
	}
	return r.Rate.Decimal.StringFixed(rateDecimals)
}

// FeeText formats the fee the way the fee field stores it.
func (r ConversionResult) FeeText() string {
	if !r.Fee.Valid {
		return ""
	}
	return r.Fee.Decimal.StringFixed(feeDecimals)
}

// ParseAmount parses a user-entered amount. ok is false when s is not a
// number, or is too long or too far from zero in scale to divide safely;
// malformed input is never an error.
func ParseAmount(s string) (d decimal.Decimal, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, false
	}
	return d, true
}

func positiveAmount(s string) (decimal.Decimal, bool) {
	d, ok := ParseAmount(s)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// CalculateConversionDetails derives the conversion rate (to / from, six
// decimals) when both amounts are positive, and the flat IBKR fee converted
// back through that rate (two decimals) for ILS->USD conversions on an IBKR
// account.
func CalculateConversionDetails(in ConversionInput) ConversionResult {
	var res ConversionResult

	from, okFrom := positiveAmount(in.FromAmount)
	to, okTo := positiveAmount(in.ToAmount)
	if !okFrom || !okTo {
		return res
	}

	rate := to.Div(from)
	res.Rate = decimal.NullDecimal{Decimal: rate.Round(rateDecimals), Valid: true}

	if strings.Contains(in.AccountName, "IBKR") &&
		in.FromCurrency == "ILS" && in.ToCurrency == "USD" &&
		rate.IsPositive() {
		res.Fee = decimal.NullDecimal{Decimal: flatConversionFee.Div(rate).Round(feeDecimals), Valid: true}
	}
	return res
}
