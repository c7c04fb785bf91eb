// Package currency converts expense amounts into the comparison currency
// (USD) using a static rate table.
//
// The table stores multipliers relative to USD, and conversion multiplies
// by the rate. That convention comes from the upstream expense console and
// is load-bearing for score parity; do not invert it to a divide.
package currency

import (
	"log/slog"
	"math"
)

// USD is the comparison currency all amounts are normalized to.
const USD = "USD"

// DefaultRates maps a currency code to its multiplier relative to USD.
var DefaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.09,
	"GBP": 1.28,
	"CAD": 0.74,
	"AUD": 0.67,
	"JPY": 0.0068,
	"CNY": 0.14,
	"INR": 0.012,
}

// Converter normalizes amounts to USD using a rate table.
type Converter struct {
	rates  map[string]float64
	logger *slog.Logger
}

// NewConverter creates a converter over the given rate table.
// A nil table uses DefaultRates; a nil logger uses slog.Default.
func NewConverter(rates map[string]float64, logger *slog.Logger) *Converter {
	if rates == nil {
		rates = DefaultRates
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{rates: rates, logger: logger}
}

// ToUSD converts amount from the given currency into USD.
//
// Zero or NaN amounts convert to 0. An empty or USD currency code returns
// the amount unchanged. An unknown code is a soft failure: the amount is
// returned unchanged (treated as already USD) and a warning is logged.
func (c *Converter) ToUSD(amount float64, currencyCode string) float64 {
	if amount == 0 || math.IsNaN(amount) {
		return 0
	}
	if currencyCode == "" || currencyCode == USD {
		return amount
	}

	rate, ok := c.rates[currencyCode]
	if !ok {
		c.logger.Warn("exchange rate not found, using 1.0", "currency", currencyCode)
		return amount
	}

	return amount * rate
}
