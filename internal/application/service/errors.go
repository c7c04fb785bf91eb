package service

import "errors"

// Validation failures surfaced to the caller. Each one rejects a single
// operation and leaves state untouched.
var (
	ErrDraftNotFound    = errors.New("draft report not found")
	ErrItemNotFound     = errors.New("expense item not found in draft")
	ErrTitleRequired    = errors.New("report title is required")
	ErrNoItems          = errors.New("report needs at least one expense item")
	ErrCostCodeRequired = errors.New("cost code is required")
	ErrCostCodeUnknown  = errors.New("cost code does not reference a known budget")
)
