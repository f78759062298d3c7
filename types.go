package converter

import "time"

// Currency a currency code
type Currency string

const (
	SEK Currency = "SEK"
	IDR Currency = "IDR"
)

// Amount a monetary amount
type Amount float64

// Rate an exchange rate
type Rate float64

type Rates map[Currency]Rate

// Exchanged the outcome of converting an amount at a given rate
type Exchanged struct {
	Rate   Rate
	Amount Amount
}

// Quote the rates published for a base currency on a given date
type Quote struct {
	Base  Currency
	Rates Rates
	Date  time.Time
}

// Other returns the counterpart of c in the SEK/IDR pair.
func (c Currency) Other() Currency {
	if c == SEK {
		return IDR
	}
	return SEK
}

// Supported reports whether c is one of the two converter currencies.
func (c Currency) Supported() bool {
	return c == SEK || c == IDR
}
