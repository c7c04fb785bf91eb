package extract

// ExtractionResult is the structured expense the extraction service
// produces from a receipt file.
type ExtractionResult struct {
	InvoiceNumber   string     `json:"invoiceNumber"`
	Date            string     `json:"date"`
	Currency        string     `json:"currency"`
	Vendor          string     `json:"vendor"`
	ExpenseType     string     `json:"expenseType"`
	ExpenseLocation string     `json:"expenseLocation"`
	ExpenseCountry  string     `json:"expenseCountry"`
	NumberOfPeople  int        `json:"numberOfPeople"`
	Items           []LineItem `json:"items"`
	Amount          float64    `json:"amount"`
	Taxes           float64    `json:"taxes"`
	Total           float64    `json:"total"`
}

// LineItem is one line on the extracted receipt.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// PolicyCheckRequest asks the policy service whether an extracted
// expense complies with the given rules for an employee seniority.
// Extraction fields sit at the top level of the JSON body.
type PolicyCheckRequest struct {
	Seniority string `json:"seniority"`
	ExtractionResult
	PolicyRules []string `json:"policyRules"`
}

// Violation is one policy breach.
type Violation struct {
	Message string `json:"message"`
}

// PolicyCheckResult is the policy service's verdict.
type PolicyCheckResult struct {
	IsCompliant bool        `json:"isCompliant"`
	Violations  []Violation `json:"violations"`
}
