package reconcile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTransactionClaimed is returned when a confirm targets a
	// transaction already matched to another expense.
	ErrTransactionClaimed = errors.New("transaction already claimed by another expense")

	// ErrExpenseAlreadyMatched is returned when a confirm targets an
	// expense that already holds a match. Undo it first.
	ErrExpenseAlreadyMatched = errors.New("expense already matched to a transaction")

	// ErrTransactionNotFound is returned when the transaction id does not
	// exist in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// CardConflictError reports a report whose matched items span more than
// one corporate card. Submission must be rejected while it holds.
type CardConflictError struct {
	CardNumbers []string
}

func (e *CardConflictError) Error() string {
	cards := append([]string(nil), e.CardNumbers...)
	sort.Strings(cards)
	return fmt.Sprintf("report contains expenses from multiple cards: %s", strings.Join(cards, ", "))
}
