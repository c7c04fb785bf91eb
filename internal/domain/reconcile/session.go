// Package reconcile manages the expense-to-transaction matching state for
// one report being composed.
//
// A Session owns the bidirectional expense/transaction mapping and keeps
// the surrounding ledger consistent as matches are confirmed or undone:
// confirming a match claims the transaction and attaches a synthetic
// receipt; undoing it releases the transaction and puts a reconstructed
// receipt back into the unmatched pool.
//
// Every mutation validates first and only then applies, so a refused
// operation leaves the session and ledger exactly as they were.
package reconcile

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

// Ledger is the transaction and receipt state a session keeps consistent.
// The in-memory store implements it.
type Ledger interface {
	// Transaction returns a transaction by id.
	Transaction(id string) (*expense.Transaction, bool)

	// UnmatchedTransactions returns the currently available pool, in
	// stable ledger order.
	UnmatchedTransactions() []*expense.Transaction

	// MarkMatched flips a transaction to Matched with the given receipt.
	MarkMatched(txID, receiptID string) error

	// MarkUnmatched reverts a transaction to Unmatched and clears its
	// receipt linkage.
	MarkUnmatched(txID string) error

	// AddUnmatchedReceipt inserts a receipt into the unmatched pool.
	AddUnmatchedReceipt(r expense.Receipt)
}

// Session is the reconciliation state for one in-progress report.
// All operations are safe for concurrent callers; writes are serialized
// so the one-transaction-per-expense invariant holds.
type Session struct {
	mu      sync.Mutex
	ledger  Ledger
	items   []*expense.Item   // report queue, insertion order
	matches map[string]string // expense item id -> transaction id
}

// NewSession creates an empty session over the given ledger.
func NewSession(ledger Ledger) *Session {
	return &Session{
		ledger:  ledger,
		matches: make(map[string]string),
	}
}

// AddItem appends an expense item to the report queue. An item that
// arrives already carrying a transaction id (re-opened report) seeds the
// match map.
func (s *Session) AddItem(item *expense.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	if item.MatchedTransactionID != "" {
		s.matches[item.ID] = item.MatchedTransactionID
	}
}

// RemoveItem drops an item from the report queue, undoing its match first
// so the transaction returns to the pool.
func (s *Session) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.undoMatchLocked(itemID)
	for i, item := range s.items {
		if item.ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns the report queue in insertion order.
func (s *Session) Items() []*expense.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*expense.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item returns a queued item by id.
func (s *Session) Item(itemID string) (*expense.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.ID == itemID {
			return item, true
		}
	}
	return nil, false
}

// Matches returns a copy of the expense-to-transaction map.
func (s *Session) Matches() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.matches))
	for k, v := range s.matches {
		out[k] = v
	}
	return out
}

// AnchorCard returns the card number of the first matched item in the
// report, which constrains every later match. The anchor is recomputed on
// each call because undoing the first match moves it.
func (s *Session) AnchorCard() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anchorCardLocked()
}

func (s *Session) anchorCardLocked() (string, bool) {
	for _, item := range s.items {
		txID, ok := s.matches[item.ID]
		if !ok {
			continue
		}
		if tx, ok := s.ledger.Transaction(txID); ok {
			return tx.CardNumber, true
		}
	}
	return "", false
}

// ProposeCandidates returns the transactions an item may be matched
// against: the full unmatched pool, or only the anchor card's share of it
// once the report has a matched item.
func (s *Session) ProposeCandidates() []*expense.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.ledger.UnmatchedTransactions()
	anchor, ok := s.anchorCardLocked()
	if !ok {
		return pool
	}

	filtered := make([]*expense.Transaction, 0, len(pool))
	for _, tx := range pool {
		if tx.CardNumber == anchor {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// ConfirmMatch records expenseID -> transactionID, claims the transaction
// in the ledger, and attaches a synthetic receipt built from the expense.
// The returned receipt id identifies that record.
//
// The operation refuses (state untouched) when the transaction is already
// claimed, when the expense already holds a match, or when the
// transaction does not exist.
func (s *Session) ConfirmMatch(expenseID, transactionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[expenseID]; ok {
		return "", fmt.Errorf("confirm match %s: %w", expenseID, ErrExpenseAlreadyMatched)
	}
	for _, claimed := range s.matches {
		if claimed == transactionID {
			return "", fmt.Errorf("confirm match %s: %w", transactionID, ErrTransactionClaimed)
		}
	}

	tx, ok := s.ledger.Transaction(transactionID)
	if !ok {
		return "", fmt.Errorf("confirm match %s: %w", transactionID, ErrTransactionNotFound)
	}
	if tx.Status == expense.TransactionMatched {
		return "", fmt.Errorf("confirm match %s: %w", transactionID, ErrTransactionClaimed)
	}

	var item *expense.Item
	for _, it := range s.items {
		if it.ID == expenseID {
			item = it
			break
		}
	}

	receiptID := "R-" + uuid.NewString()[:8]
	if err := s.ledger.MarkMatched(transactionID, receiptID); err != nil {
		return "", err
	}

	s.matches[expenseID] = transactionID
	if item != nil {
		item.MatchedTransactionID = transactionID
	}

	return receiptID, nil
}

// UndoMatch removes the mapping for expenseID, releases the transaction
// back to the unmatched pool, and reinserts a receipt reconstructed from
// the transaction. An expense with no current match is a benign no-op.
func (s *Session) UndoMatch(expenseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoMatchLocked(expenseID)
}

func (s *Session) undoMatchLocked(expenseID string) {
	txID, ok := s.matches[expenseID]
	if !ok {
		return
	}

	delete(s.matches, expenseID)
	for _, item := range s.items {
		if item.ID == expenseID {
			item.MatchedTransactionID = ""
			break
		}
	}

	tx, ok := s.ledger.Transaction(txID)
	if !ok {
		return
	}

	receiptID := tx.ReceiptID
	_ = s.ledger.MarkUnmatched(txID)
	if receiptID != "" {
		s.ledger.AddUnmatchedReceipt(expense.Receipt{
			ID:       receiptID,
			Date:     tx.Date,
			Vendor:   tx.MerchantName,
			Amount:   tx.Amount,
			Category: tx.Category,
			Status:   string(expense.TransactionUnmatched),
		})
	}
}

// ValidateSingleCard scans the matched items and reports a conflict when
// they reference transactions on more than one card number. Called before
// submission; a conflict blocks it.
func (s *Session) ValidateSingleCard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var cards []string
	for _, item := range s.items {
		txID, ok := s.matches[item.ID]
		if !ok {
			continue
		}
		tx, ok := s.ledger.Transaction(txID)
		if !ok {
			continue
		}
		if !seen[tx.CardNumber] {
			seen[tx.CardNumber] = true
			cards = append(cards, tx.CardNumber)
		}
	}

	if len(cards) > 1 {
		return &CardConflictError{CardNumbers: cards}
	}
	return nil
}

// Clear empties the report queue and match map without touching the
// ledger. Used after a successful submission, when matched transactions
// stay matched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.matches = make(map[string]string)
}
