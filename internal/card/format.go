// Package card turns a shoe listing into the fields a renderer draws on a
// product card: the variant flag, formatted prices, color count and link.
package card

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceFormatter renders amounts with locale grouping, two fraction digits
// and a fixed currency symbol prefix.
type PriceFormatter struct {
	printer    *message.Printer
	symbol     string
	decimalSep string
}

// NewPriceFormatter creates a formatter for a BCP 47 locale such as "en-US".
func NewPriceFormatter(locale, symbol string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	printer := message.NewPrinter(tag)
	// "1.5" in en, "1,5" in de.
	sep := printer.Sprintf("%v", number.Decimal(1.5, number.Scale(1)))
	sep = strings.TrimSuffix(strings.TrimPrefix(sep, "1"), "5")

	return &PriceFormatter{
		printer:    printer,
		symbol:     symbol,
		decimalSep: sep,
	}, nil
}

// Format returns e.g. "$1,234.50". Negative amounts put the sign before the symbol.
// Rounding to cents is done on the decimal, half away from zero; only the
// whole part goes through the locale printer for grouping.
func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	amount = amount.Round(2)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	// Amounts past int64 keep their digits ungrouped.
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = f.printer.Sprintf("%v", number.Decimal(n))
	}
	return sign + f.symbol + whole + f.decimalSep + frac
}

// Pluralize returns "<count> <word>" with word pluralised unless count is 1.
func Pluralize(word string, count int) string {
	if count != 1 {
		word = inflection.Plural(word)
	}
	return fmt.Sprintf("%d %s", count, word)
}

// ShoePath builds the card link for a slug. The slug is not validated.
func ShoePath(slug string) string {
	return "/shoe/" + slug
}
