package dto

// AddItemRequest adds one expense line to a draft report.
type AddItemRequest struct {
	Date        string  `json:"date" binding:"required"`
	Vendor      string  `json:"vendor" binding:"required"`
	Total       float64 `json:"total" binding:"required"`
	Currency    string  `json:"currency"`
	ExpenseType string  `json:"expenseType"`
}

// ConfirmMatchRequest pairs a draft expense with a card transaction.
type ConfirmMatchRequest struct {
	ExpenseID     string `json:"expenseId" binding:"required"`
	TransactionID string `json:"transactionId" binding:"required"`
}

// SubmitReportRequest finalizes a draft into a submitted report.
type SubmitReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CostCode    string `json:"costCode"`
}
