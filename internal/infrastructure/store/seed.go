package store

import "github.com/olbb/expense-console-backend/internal/domain/expense"

// Demo account state for the console. The card feed seeds the
// transaction ledger separately.

func seedCards() []expense.Card {
	return []expense.Card{
		{
			ID:         "card-1",
			CardNumber: "****4567",
			CardType:   "Corporate Visa",
			ExpiryDate: "12/26",
			CardHolder: "Sarah Johnson",
			Department: "Marketing",
			IsActive:   true,
		},
		{
			ID:         "card-2",
			CardNumber: "****8901",
			CardType:   "Corporate Amex",
			ExpiryDate: "05/27",
			CardHolder: "Michael Chen",
			Department: "Sales",
			IsActive:   true,
		},
		{
			ID:         "card-3",
			CardNumber: "****2345",
			CardType:   "Corporate Mastercard",
			ExpiryDate: "09/25",
			CardHolder: "David Rodriguez",
			Department: "Engineering",
			IsActive:   true,
		},
		{
			ID:         "card-4",
			CardNumber: "****6789",
			CardType:   "Corporate Visa",
			ExpiryDate: "03/26",
			CardHolder: "Emily Wilson",
			Department: "Finance",
			IsActive:   true,
		},
	}
}

func seedReceipts() []expense.Receipt {
	return []expense.Receipt{
		{ID: "R-10049", Date: "2025-05-25", Vendor: "Delta Airlines", Amount: 642.87, Category: "Travel", Status: "Unmatched"},
		{ID: "R-10050", Date: "2025-05-22", Vendor: "Office Depot", Amount: 85.32, Category: "Office Supplies", Status: "Unmatched"},
		{ID: "R-10051", Date: "2025-05-21", Vendor: "Starbucks", Amount: 15.47, Category: "Meals", Status: "Unmatched"},
	}
}

func seedBudgets() []*Budget {
	return []*Budget{
		{
			ID:        "BUD-001",
			Name:      "Q2 2025 Travel Budget",
			StartDate: "2025-04-01",
			EndDate:   "2025-06-30",
			Amount:    50000,
			Spent:     18427.86,
			Remaining: 31572.14,
			Status:    "Active",
			Categories: []BudgetLine{
				{Name: "Flights", Allocation: 20000, Spent: 6840.42},
				{Name: "Accommodations", Allocation: 15000, Spent: 5320.25},
				{Name: "Meals", Allocation: 8000, Spent: 3245.68},
				{Name: "Transportation", Allocation: 5000, Spent: 1840.80},
				{Name: "Miscellaneous", Allocation: 2000, Spent: 1180.71},
			},
			Departments: []BudgetLine{
				{Name: "Sales", Allocation: 20000, Spent: 5840.25},
				{Name: "Marketing", Allocation: 15000, Spent: 4320.80},
				{Name: "Engineering", Allocation: 10000, Spent: 3650.45},
				{Name: "Finance", Allocation: 5000, Spent: 2750.30},
			},
		},
		{
			ID:        "BUD-002",
			Name:      "Annual Office Supplies",
			StartDate: "2025-01-01",
			EndDate:   "2025-12-31",
			Amount:    15000,
			Spent:     3845.72,
			Remaining: 11154.28,
			Status:    "Active",
			Categories: []BudgetLine{
				{Name: "Stationery", Allocation: 5000, Spent: 1245.36},
				{Name: "IT Equipment", Allocation: 7000, Spent: 1850.21},
				{Name: "Furniture", Allocation: 3000, Spent: 750.15},
			},
			Departments: []BudgetLine{
				{Name: "Operations", Allocation: 15000, Spent: 3845.72},
			},
		},
		{
			ID:        "BUD-003",
			Name:      "Q1 2025 Conference Budget",
			StartDate: "2025-01-01",
			EndDate:   "2025-03-31",
			Amount:    25000,
			Spent:     24568.90,
			Remaining: 431.10,
			Status:    "Completed",
			Categories: []BudgetLine{
				{Name: "Registration", Allocation: 5000, Spent: 4980.00},
				{Name: "Flights", Allocation: 10000, Spent: 9856.75},
				{Name: "Accommodations", Allocation: 7000, Spent: 6845.30},
				{Name: "Meals", Allocation: 3000, Spent: 2886.85},
			},
			Departments: []BudgetLine{
				{Name: "Sales", Allocation: 15000, Spent: 14741.34},
				{Name: "Marketing", Allocation: 10000, Spent: 9827.56},
			},
		},
	}
}
