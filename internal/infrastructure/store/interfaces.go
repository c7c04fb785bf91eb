package store

import "github.com/olbb/expense-console-backend/internal/domain/expense"

// Repository defines the complete storage interface. Everything lives in
// process memory; the interface keeps handlers and services testable and
// leaves room for a persistent implementation later.
type Repository interface {
	TransactionRepository
	ReceiptRepository
	CardRepository
	ReportRepository
	BudgetRepository
}

// TransactionRepository handles the corporate-card ledger.
type TransactionRepository interface {
	// Transaction returns a transaction by id.
	Transaction(id string) (*expense.Transaction, bool)

	// Transactions returns the full ledger in stable order.
	Transactions() []*expense.Transaction

	// UnmatchedTransactions returns the available pool in ledger order.
	UnmatchedTransactions() []*expense.Transaction

	// UpsertTransaction inserts a synced transaction. An existing entry
	// keeps its match state; only the feed fields refresh.
	UpsertTransaction(tx expense.Transaction)

	// MarkMatched flips a transaction to Matched with the given receipt.
	MarkMatched(txID, receiptID string) error

	// MarkUnmatched reverts a transaction to Unmatched.
	MarkUnmatched(txID string) error
}

// ReceiptRepository handles the unmatched-receipt pool.
type ReceiptRepository interface {
	UnmatchedReceipts() []expense.Receipt
	AddUnmatchedReceipt(r expense.Receipt)
	RemoveUnmatchedReceipt(receiptID string)
}

// CardRepository handles corporate cards.
type CardRepository interface {
	Cards() []expense.Card
	CardByNumber(cardNumber string) (expense.Card, bool)
}

// ReportRepository handles submitted reports.
type ReportRepository interface {
	AddReport(r *Report)
	Reports() []*Report
	Report(id string) (*Report, bool)
	UpdateReportStatus(id string, status ReportStatus) error
}

// BudgetRepository handles budgets.
type BudgetRepository interface {
	Budgets() []*Budget
	Budget(id string) (*Budget, bool)
	ReplaceBudgets(budgets []*Budget)
}
