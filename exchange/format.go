package exchange

import (
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
	converter "go-currency-converter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// idr prints IDR amounts with Indonesian digit grouping ("1.500.000,25").
var idr = message.NewPrinter(language.Indonesian)

var (
	leadingFloat = regexp.MustCompile(`^-?([0-9]+\.?[0-9]*|\.[0-9]+)`)
	leadingInt   = regexp.MustCompile(`^-?[0-9]+`)
)

// FormatIDR formats an IDR amount with at most two fraction digits.
func FormatIDR(amount converter.Amount) string {
	return idr.Sprintf("%v", number.Decimal(float64(amount), number.MaxFractionDigits(2)))
}

// FormatSEK formats a SEK amount with exactly two fraction digits.
func FormatSEK(amount converter.Amount) string {
	return decimal.NewFromFloat(float64(amount)).StringFixed(2)
}

// Format formats amount the way currency is displayed.
func Format(amount converter.Amount, currency converter.Currency) string {
	if currency == converter.IDR {
		return FormatIDR(amount)
	}
	return FormatSEK(amount)
}

// FormatInverse formats an IDR -> SEK rate, which is far below one.
func FormatInverse(rate converter.Rate) string {
	return decimal.NewFromFloat(float64(rate)).StringFixed(6)
}

// FormatEntry formats a manual entry for display. IDR entries show their
// grouped integer part, SEK entries are shown as typed.
func FormatEntry(entry string, base converter.Currency) string {
	if base == converter.IDR {
		n, err := decimal.NewFromString(leadingInt.FindString(entry))
		if err != nil {
			n = decimal.Zero
		}
		// digits past float64 precision are rounded
		return FormatIDR(converter.Amount(n.InexactFloat64()))
	}
	if entry == "" {
		return "0"
	}
	return entry
}

// ParseAmount reads the numeric prefix of a manual entry, so "20+5" is 20.
// An entry without one is zero.
func ParseAmount(entry string) converter.Amount {
	f, err := strconv.ParseFloat(leadingFloat.FindString(entry), 64)
	if err != nil {
		return 0
	}
	return converter.Amount(f)
}
