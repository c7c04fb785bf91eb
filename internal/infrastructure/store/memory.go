// Package store holds the in-memory state of the expense console:
// the card-transaction ledger, the unmatched-receipt pool, corporate
// cards, budgets, and submitted reports.
//
// There is deliberately no database behind this; the console's state is
// scoped to the running process, with the card feed as the source of
// truth for transactions.
package store

import (
	"errors"
	"sync"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

// ErrNotFound is returned when an id does not resolve.
var ErrNotFound = errors.New("not found")

// Memory is the in-memory Repository implementation.
type Memory struct {
	mu sync.RWMutex

	txOrder  []string
	txs      map[string]*expense.Transaction
	receipts []expense.Receipt
	cards    []expense.Card
	reports  []*Report
	budgets  []*Budget
}

// Compile-time check that Memory implements Repository
var _ Repository = (*Memory)(nil)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		txs: make(map[string]*expense.Transaction),
	}
}

// NewMemorySeeded creates a store preloaded with the demo cards,
// receipts, and budgets.
func NewMemorySeeded() *Memory {
	m := NewMemory()
	m.cards = seedCards()
	m.receipts = seedReceipts()
	m.budgets = seedBudgets()
	return m
}

// Transaction returns a copy of the transaction with the given id.
func (m *Memory) Transaction(id string) (*expense.Transaction, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.txs[id]
	if !ok {
		return nil, false
	}
	cp := *tx
	return &cp, true
}

// Transactions returns the full ledger in insertion order.
func (m *Memory) Transactions() []*expense.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*expense.Transaction, 0, len(m.txOrder))
	for _, id := range m.txOrder {
		cp := *m.txs[id]
		out = append(out, &cp)
	}
	return out
}

// UnmatchedTransactions returns the available pool in ledger order.
func (m *Memory) UnmatchedTransactions() []*expense.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*expense.Transaction
	for _, id := range m.txOrder {
		if m.txs[id].Status == expense.TransactionUnmatched {
			cp := *m.txs[id]
			out = append(out, &cp)
		}
	}
	return out
}

// UpsertTransaction inserts a transaction from the card feed. An entry
// already in the ledger keeps its status and receipt linkage so a feed
// refresh never unwinds reconciliation work.
func (m *Memory) UpsertTransaction(tx expense.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.txs[tx.ID]; ok {
		tx.Status = existing.Status
		tx.ReceiptID = existing.ReceiptID
		tx.ReceiptState = existing.ReceiptState
		m.txs[tx.ID] = &tx
		return
	}

	if tx.Status == "" {
		tx.Status = expense.TransactionUnmatched
	}
	m.txs[tx.ID] = &tx
	m.txOrder = append(m.txOrder, tx.ID)
}

// MarkMatched flips a transaction to Matched with the given receipt.
func (m *Memory) MarkMatched(txID, receiptID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[txID]
	if !ok {
		return ErrNotFound
	}
	tx.Status = expense.TransactionMatched
	tx.ReceiptID = receiptID
	tx.ReceiptState = expense.ReceiptVerified
	return nil
}

// MarkUnmatched reverts a transaction to Unmatched and clears its
// receipt linkage.
func (m *Memory) MarkUnmatched(txID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[txID]
	if !ok {
		return ErrNotFound
	}
	tx.Status = expense.TransactionUnmatched
	tx.ReceiptID = ""
	tx.ReceiptState = ""
	return nil
}

// UnmatchedReceipts returns the receipt pool, newest first.
func (m *Memory) UnmatchedReceipts() []expense.Receipt {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]expense.Receipt, len(m.receipts))
	copy(out, m.receipts)
	return out
}

// AddUnmatchedReceipt prepends a receipt to the pool.
func (m *Memory) AddUnmatchedReceipt(r expense.Receipt) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.receipts = append([]expense.Receipt{r}, m.receipts...)
}

// RemoveUnmatchedReceipt drops a receipt from the pool, if present.
func (m *Memory) RemoveUnmatchedReceipt(receiptID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range m.receipts {
		if r.ID == receiptID {
			m.receipts = append(m.receipts[:i], m.receipts[i+1:]...)
			return
		}
	}
}

// Cards returns the corporate cards.
func (m *Memory) Cards() []expense.Card {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]expense.Card, len(m.cards))
	copy(out, m.cards)
	return out
}

// CardByNumber returns the card with the given masked number.
func (m *Memory) CardByNumber(cardNumber string) (expense.Card, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cards {
		if c.CardNumber == cardNumber {
			return c, true
		}
	}
	return expense.Card{}, false
}

// AddReport prepends a submitted report.
func (m *Memory) AddReport(r *Report) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append([]*Report{r}, m.reports...)
}

// Reports returns submitted reports, newest first.
func (m *Memory) Reports() []*Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Report, len(m.reports))
	for i, r := range m.reports {
		cp := *r
		out[i] = &cp
	}
	return out
}

// Report returns a report by id.
func (m *Memory) Report(id string) (*Report, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.reports {
		if r.ID == id {
			cp := *r
			return &cp, true
		}
	}
	return nil, false
}

// UpdateReportStatus moves a report through its lifecycle.
func (m *Memory) UpdateReportStatus(id string, status ReportStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.reports {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return ErrNotFound
}

// Budgets returns all budgets.
func (m *Memory) Budgets() []*Budget {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Budget, len(m.budgets))
	for i, b := range m.budgets {
		cp := *b
		out[i] = &cp
	}
	return out
}

// Budget returns a budget by id.
func (m *Memory) Budget(id string) (*Budget, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.budgets {
		if b.ID == id {
			cp := *b
			return &cp, true
		}
	}
	return nil, false
}

// ReplaceBudgets swaps in recomputed budgets.
func (m *Memory) ReplaceBudgets(budgets []*Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.budgets = budgets
}
