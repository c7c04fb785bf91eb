package matcher

// Config holds matcher configuration
type Config struct {
	// MinScore is the lowest total score a candidate may carry and still
	// be auto-selected as the best match. Default: 60.
	MinScore int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		MinScore: 60,
	}
}

// BestMatch is the selected candidate for an expense.
type BestMatch struct {
	TransactionID string `json:"transactionId"`
	Score         int    `json:"score"`
}
