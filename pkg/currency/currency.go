// Package currency renders numeric prices as localized display strings.
// The output is display-only text: nothing in the application ever parses a
// formatted price back into a number.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formats whole-peso amounts for one locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter builds a formatter for the given BCP 47 tag, falling back to
// es-AR when the tag does not parse.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse("es-AR")
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders an amount with the locale's digit grouping and no decimals,
// e.g. 85000 → "$ 85.000" under es-AR.
func (f *Formatter) Format(amount float64) string {
	return f.printer.Sprintf("$ %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
