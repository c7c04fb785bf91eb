// Package expense defines the core entities shared by the matching and
// reconciliation logic: extracted expense items, corporate-card
// transactions, and receipts.
package expense

import "time"

// TransactionStatus tracks whether a card transaction has been matched
// to a receipt.
type TransactionStatus string

const (
	TransactionUnmatched TransactionStatus = "Unmatched"
	TransactionMatched   TransactionStatus = "Matched"
)

// ReceiptStatus is the verification state of a receipt attached to a
// transaction.
type ReceiptStatus string

const (
	ReceiptVerified      ReceiptStatus = "Verified"
	ReceiptPendingReview ReceiptStatus = "Pending Review"
)

// Item is one extracted expense line bound to an in-progress report.
type Item struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"` // calendar date, YYYY-MM-DD
	Vendor               string  `json:"vendor"`
	Total                float64 `json:"total"`
	Currency             string  `json:"currency"`
	ExpenseType          string  `json:"expenseType"`
	MatchedTransactionID string  `json:"matchedTransactionId,omitempty"`
}

// Transaction is one corporate-card ledger entry. Amounts are USD.
// Transactions are never deleted, only re-statused on match/unmatch.
type Transaction struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	MerchantName string            `json:"merchantName"`
	Category     string            `json:"category"`
	Amount       float64           `json:"amount"`
	Status       TransactionStatus `json:"status"`
	CardNumber   string            `json:"cardNumber"`
	CardType     string            `json:"cardType"`
	AccountName  string            `json:"accountName"`
	ReceiptID    string            `json:"receiptId,omitempty"`
	ReceiptState ReceiptStatus     `json:"receiptStatus,omitempty"`
}

// Receipt is an uploaded receipt awaiting (or holding) a transaction match.
type Receipt struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Vendor   string  `json:"vendor"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
}

// Card is a corporate card on the account.
type Card struct {
	ID         string `json:"id"`
	CardNumber string `json:"cardNumber"`
	CardType   string `json:"cardType"`
	ExpiryDate string `json:"expiryDate"`
	CardHolder string `json:"cardHolder"`
	Department string `json:"department"`
	IsActive   bool   `json:"isActive"`
}

// DateLayout is the wire format for calendar dates throughout the system.
const DateLayout = "2006-01-02"

// ParseDate parses a calendar date, returning the zero time on failure.
func ParseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
