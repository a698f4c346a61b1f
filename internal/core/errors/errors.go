package errors

const (
	HttpInternalError          = "internal_error"
	HttpInvalidJsonError       = "invalid_json"
	HttpInvalidRequestError    = "invalid_request"
	HttpPartNotFoundError      = "part_not_found"
	HttpValidationError        = "validation_failed"
	HttpSequenceOverflowError  = "sequence_overflow"
	HttpConflictExhaustedError = "conflict_exhausted"
	HttpAlreadyAssignedError   = "already_assigned"
	HttpIdentifierTakenError   = "identifier_taken"
)

// ErrorResponse is the error response body for every v1 endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Detailer is implemented by errors that carry structured response details.
type Detailer interface {
	Details() map[string]interface{}
}
