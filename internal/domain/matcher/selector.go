package matcher

import (
	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

// FindBestMatch returns the highest-scoring candidate transaction for the
// item, or nil when no candidate reaches the configured minimum score.
//
// Transactions already claimed as a value in currentMatches are skipped.
// Ties resolve to the first candidate encountered in pool order, so
// selection is deterministic for a given pool ordering. The pool and the
// match map are never mutated.
func (m *Matcher) FindBestMatch(
	item *expense.Item,
	expenseAmountUSD float64,
	pool []*expense.Transaction,
	currentMatches map[string]string,
) *BestMatch {
	if item == nil {
		return nil
	}

	claimed := make(map[string]bool, len(currentMatches))
	for _, txID := range currentMatches {
		claimed[txID] = true
	}

	bestScore := 0
	bestTransactionID := ""

	for _, tx := range pool {
		if claimed[tx.ID] {
			continue
		}
		score := m.Score(tx, item, expenseAmountUSD)
		if score > bestScore {
			bestScore = score
			bestTransactionID = tx.ID
		}
	}

	if bestScore < m.config.MinScore {
		return nil
	}

	return &BestMatch{
		TransactionID: bestTransactionID,
		Score:         bestScore,
	}
}
