// Package matcher scores corporate-card transactions against extracted
// expense items and selects the best candidate for reconciliation.
//
// A score is an integer in [0,100] built from three capped signals:
//   - amount proximity (up to 50 points)
//   - vendor/merchant name similarity (up to 30 points)
//   - date proximity (up to 20 points)
//
// The tier boundaries are empirical and mirror the production console's
// behavior exactly; reordering or "smoothing" them changes which
// transactions auto-match.
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	best := m.FindBestMatch(item, amountUSD, pool, currentMatches)
//	if best != nil {
//		// best.TransactionID scored >= config.MinScore
//	}
package matcher

import (
	"math"
	"strings"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

// Matcher scores and selects transactions for expense items.
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher with the given config
func NewMatcher(config Config) *Matcher {
	return &Matcher{
		config: config,
	}
}

// Score computes the compatibility score between one transaction and one
// expense item. expenseAmountUSD is the item total already normalized to
// USD, since transaction amounts are USD.
func (m *Matcher) Score(tx *expense.Transaction, item *expense.Item, expenseAmountUSD float64) int {
	score := amountScore(tx.Amount, expenseAmountUSD)
	score += vendorScore(item.Vendor, tx.MerchantName)
	score += dateScore(item.Date, tx.Date)
	return score
}

// amountScore awards up to 50 points by absolute difference, with a
// relative 10% tier as the last resort. First matching tier wins.
func amountScore(txAmount, expenseAmountUSD float64) int {
	diff := math.Abs(txAmount - expenseAmountUSD)
	switch {
	case diff < 0.01:
		return 50 // exact, penny tolerance
	case diff < 1:
		return 40
	case diff < 5:
		return 30
	case diff < 10:
		return 20
	case diff/expenseAmountUSD < 0.10:
		return 10
	default:
		return 0
	}
}

// vendorScore awards up to 30 points for name similarity: exact match,
// then substring either direction, then per-token overlap at 5 points a
// token (tokens longer than 2 chars, capped at 20).
func vendorScore(vendor, merchant string) int {
	vendorName := strings.ToLower(vendor)
	merchantName := strings.ToLower(merchant)

	if vendorName == merchantName {
		return 30
	}
	if strings.Contains(vendorName, merchantName) || strings.Contains(merchantName, vendorName) {
		return 25
	}

	merchantWords := strings.Fields(merchantName)
	common := 0
	for _, word := range strings.Fields(vendorName) {
		if len(word) <= 2 {
			continue
		}
		for _, mWord := range merchantWords {
			if strings.Contains(mWord, word) {
				common++
				break
			}
		}
	}
	if common > 0 {
		return min(20, common*5)
	}
	return 0
}

// dateScore awards up to 20 points by calendar-day distance. The
// difference is kept fractional before the tier comparison.
func dateScore(expenseDate, txDate string) int {
	d1 := expense.ParseDate(expenseDate)
	d2 := expense.ParseDate(txDate)

	daysDiff := math.Abs(d1.Sub(d2).Hours() / 24)
	switch {
	case daysDiff < 1:
		return 20 // same day
	case daysDiff < 2:
		return 15
	case daysDiff < 4:
		return 10
	case daysDiff < 8:
		return 5
	default:
		return 0
	}
}
