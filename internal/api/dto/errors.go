package dto

// APIError is the structured error body every failing response carries.
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Cards   []string `json:"cards,omitempty"`
}

// Error codes
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeBadRequest   = "bad_request"
	ErrCodeConflict     = "conflict"
	ErrCodeCardConflict = "card_conflict"
	ErrCodeValidation   = "validation_error"
	ErrCodeUpstream     = "upstream_error"
	ErrCodeInternal     = "internal_error"
)

// NewAPIError creates an APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}

// NotFoundError creates a not-found response for the named resource.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad-request response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// ConflictError creates a conflict response.
func ConflictError(message string) APIError {
	return NewAPIError(ErrCodeConflict, message)
}

// CardConflictError creates the multi-card submission rejection,
// carrying the conflicting card numbers so the console can show them.
func CardConflictError(message string, cards []string) APIError {
	return APIError{Code: ErrCodeCardConflict, Message: message, Cards: cards}
}

// ValidationError creates a validation failure response.
func ValidationError(message string) APIError {
	return NewAPIError(ErrCodeValidation, message)
}

// UpstreamError creates a response for a failed extractor or
// policy-check call.
func UpstreamError(message string) APIError {
	return NewAPIError(ErrCodeUpstream, message)
}
