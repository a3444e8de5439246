package amortization

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCurrency renders an amount rounded up to whole units with the
// thousands grouping (and digits) of the given language.
func FormatCurrency(amount decimal.Decimal, tag language.Tag) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%d", amount.Ceil().IntPart())
}
