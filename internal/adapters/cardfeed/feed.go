// Package cardfeed supplies corporate-card transactions to the ledger.
//
// The console consumes transactions through the Provider interface; the
// bundled StaticProvider replays a fixed demo ledger, standing in for a
// real card-network integration.
package cardfeed

import (
	"context"

	"github.com/olbb/expense-console-backend/internal/domain/expense"
)

// Provider produces card transactions for the ledger.
type Provider interface {
	// Name identifies the feed in logs.
	Name() string

	// Fetch returns the current transaction ledger.
	Fetch(ctx context.Context) ([]expense.Transaction, error)
}

// StaticProvider serves the built-in demo ledger.
type StaticProvider struct{}

// Compile-time check that StaticProvider implements Provider
var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates the demo feed.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// Name identifies the feed in logs.
func (p *StaticProvider) Name() string { return "static" }

// Fetch returns the demo ledger: May 2025 activity plus the prior month
// for comparison. May totals 1950.25 across categories.
func (p *StaticProvider) Fetch(_ context.Context) ([]expense.Transaction, error) {
	return []expense.Transaction{
		// Travel: 683.58
		{
			ID: "TX-54321", Date: "2025-05-25", MerchantName: "Delta Airlines",
			Category: "Travel", Amount: 642.87, Status: expense.TransactionUnmatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
		},
		{
			ID: "TX-54331", Date: "2025-05-15", MerchantName: "United Airlines",
			Category: "Travel", Amount: 40.71, Status: expense.TransactionUnmatched,
			CardNumber: "****2345", CardType: "Corporate Mastercard", AccountName: "David Rodriguez",
		},
		// Lodging: 507.31
		{
			ID: "TX-54322", Date: "2025-05-24", MerchantName: "Hilton Hotels",
			Category: "Lodging", Amount: 389.54, Status: expense.TransactionMatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
			ReceiptID: "R-10045", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54332", Date: "2025-05-22", MerchantName: "Marriott Hotel",
			Category: "Lodging", Amount: 117.77, Status: expense.TransactionMatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
			ReceiptID: "R-10052", ReceiptState: expense.ReceiptVerified,
		},
		// Transportation: 350.46
		{
			ID: "TX-54323", Date: "2025-05-24", MerchantName: "Uber",
			Category: "Transportation", Amount: 38.75, Status: expense.TransactionMatched,
			CardNumber: "****8901", CardType: "Corporate Amex", AccountName: "Michael Chen",
			ReceiptID: "R-10046", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54327", Date: "2025-05-20", MerchantName: "Yellow Cab",
			Category: "Transportation", Amount: 45.20, Status: expense.TransactionMatched,
			CardNumber: "****2345", CardType: "Corporate Mastercard", AccountName: "David Rodriguez",
			ReceiptID: "R-10048", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54333", Date: "2025-05-19", MerchantName: "Corporate Car Service",
			Category: "Transportation", Amount: 266.51, Status: expense.TransactionUnmatched,
			CardNumber: "****8901", CardType: "Corporate Amex", AccountName: "Michael Chen",
		},
		// Meals: 214.28
		{
			ID: "TX-54324", Date: "2025-05-23", MerchantName: "Ruth's Chris Steakhouse",
			Category: "Meals", Amount: 187.45, Status: expense.TransactionMatched,
			CardNumber: "****8901", CardType: "Corporate Amex", AccountName: "Michael Chen",
			ReceiptID: "R-10047", ReceiptState: expense.ReceiptPendingReview,
		},
		{
			ID: "TX-54326", Date: "2025-05-21", MerchantName: "Starbucks",
			Category: "Meals", Amount: 15.47, Status: expense.TransactionUnmatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
		},
		{
			ID: "TX-54334", Date: "2025-05-18", MerchantName: "Business Lunch",
			Category: "Meals", Amount: 11.36, Status: expense.TransactionUnmatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
		},
		// Office supplies: 194.62
		{
			ID: "TX-54325", Date: "2025-05-22", MerchantName: "Office Depot",
			Category: "Office Supplies", Amount: 85.32, Status: expense.TransactionUnmatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
		},
		{
			ID: "TX-54329", Date: "2025-05-19", MerchantName: "Amazon",
			Category: "Office Supplies", Amount: 109.30, Status: expense.TransactionUnmatched,
			CardNumber: "****6789", CardType: "Corporate Visa", AccountName: "Emily Wilson",
		},
		// April, for month-over-month comparison
		{
			ID: "TX-54340", Date: "2025-04-28", MerchantName: "Delta Airlines",
			Category: "Travel", Amount: 1245.80, Status: expense.TransactionMatched,
			CardNumber: "****4567", CardType: "Corporate Visa", AccountName: "Sarah Johnson",
			ReceiptID: "R-10020", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54341", Date: "2025-04-25", MerchantName: "Four Seasons",
			Category: "Lodging", Amount: 1850.50, Status: expense.TransactionMatched,
			CardNumber: "****8901", CardType: "Corporate Amex", AccountName: "Michael Chen",
			ReceiptID: "R-10021", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54342", Date: "2025-04-20", MerchantName: "Enterprise Car Rental",
			Category: "Transportation", Amount: 550.25, Status: expense.TransactionMatched,
			CardNumber: "****2345", CardType: "Corporate Mastercard", AccountName: "David Rodriguez",
			ReceiptID: "R-10022", ReceiptState: expense.ReceiptVerified,
		},
		{
			ID: "TX-54343", Date: "2025-04-15", MerchantName: "Business Dinner",
			Category: "Meals", Amount: 554.25, Status: expense.TransactionMatched,
			CardNumber: "****6789", CardType: "Corporate Visa", AccountName: "Emily Wilson",
			ReceiptID: "R-10023", ReceiptState: expense.ReceiptVerified,
		},
	}, nil
}
