package store

import "time"

// ReportStatus is the lifecycle state of a submitted expense report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// CardInfo identifies the single card a report's matches settled on.
type CardInfo struct {
	CardNumber  string `json:"cardNumber"`
	AccountName string `json:"accountName"`
}

// ReportItem is one expense line inside a submitted report, annotated
// with its USD amount and transaction linkage.
type ReportItem struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	Vendor               string  `json:"vendor"`
	Total                float64 `json:"total"`
	Currency             string  `json:"currency"`
	ExpenseType          string  `json:"expenseType"`
	AmountUSD            float64 `json:"amountUSD"`
	MatchedTransactionID string  `json:"matchedTransactionId,omitempty"`
	CardNumber           string  `json:"cardNumber,omitempty"`
	AccountName          string  `json:"accountName,omitempty"`
}

// Report is a submitted expense report.
type Report struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CostCode    string       `json:"costCode"`
	CardInfo    *CardInfo    `json:"cardInfo,omitempty"`
	Items       []ReportItem `json:"items"`
	TotalAmount float64      `json:"totalAmount"`
	Currency    string       `json:"currency"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// BudgetLine is the allocation/spend pair for one category or department
// within a budget.
type BudgetLine struct {
	Name       string  `json:"name"`
	Allocation float64 `json:"allocation"`
	Spent      float64 `json:"spent"`
}

// Budget is one spending budget with a date window.
type Budget struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Amount      float64      `json:"amount"`
	Spent       float64      `json:"spent"`
	Remaining   float64      `json:"remaining"`
	Status      string       `json:"status"`
	Categories  []BudgetLine `json:"categories"`
	Departments []BudgetLine `json:"departments"`
}
