package dto

// HealthResponse reports process liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// DraftResponse identifies a newly opened draft report.
type DraftResponse struct {
	DraftID string `json:"draftId"`
}

// MatchResponse reports a confirmed pairing and the synthetic receipt
// minted for it.
type MatchResponse struct {
	ExpenseID     string `json:"expenseId"`
	TransactionID string `json:"transactionId"`
	ReceiptID     string `json:"receiptId"`
}

// SyncResponse reports a card-feed refresh.
type SyncResponse struct {
	Transactions int `json:"transactions"`
}
