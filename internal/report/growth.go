package report

import (
	"github.com/shopspring/decimal"
)

// notApplicableText is how a growth without a numeric value is rendered.
const notApplicableText = "N/A"

// Growth is either a percentage or not applicable. The zero value is not
// applicable, so it can never be mistaken for 0%.
type Growth struct {
	percent    decimal.Decimal
	applicable bool
}

// Percent wraps a numeric growth percentage.
func Percent(p decimal.Decimal) Growth {
	return Growth{percent: p, applicable: true}
}

// NotApplicable is the growth reported when previous revenue is zero.
func NotApplicable() Growth {
	return Growth{}
}

// Applicable reports whether the growth has a numeric value.
func (g Growth) Applicable() bool {
	return g.applicable
}

// Value returns the percentage and whether it is applicable.
func (g Growth) Value() (decimal.Decimal, bool) {
	return g.percent, g.applicable
}

// String renders "x.xx%" or "N/A".
func (g Growth) String() string {
	if !g.applicable {
		return notApplicableText
	}
	return g.percent.StringFixed(2) + "%"
}

// Figure renders the percentage to two decimals without the percent sign,
// or "N/A".
func (g Growth) Figure() string {
	if !g.applicable {
		return notApplicableText
	}
	return g.percent.StringFixed(2)
}

// MarshalText renders Figure. Used by both the JSON and YAML encoders.
func (g Growth) MarshalText() ([]byte, error) {
	return []byte(g.Figure()), nil
}
