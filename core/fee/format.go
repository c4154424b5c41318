package fee

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// FormatWon renders a won amount with thousands grouping: "3,960,000원".
func FormatWon(d decimal.Decimal) string {
	if d.IsInteger() {
		return printer.Sprintf("%d원", d.IntPart())
	}
	return printer.Sprintf("%.2f원", d.InexactFloat64())
}

// FormatManwon renders a won amount in the form's display unit: "90,000만원".
func FormatManwon(d decimal.Decimal) string {
	q := d.Div(ManwonUnit)
	if q.IsInteger() {
		return printer.Sprintf("%d만원", q.IntPart())
	}
	return printer.Sprintf("%v만원", q.InexactFloat64())
}

// FormatRate renders a fractional rate as a percentage: 0.004 -> "0.4%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(percent).String() + "%"
}
