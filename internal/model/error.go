package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeCodeExists       = "CODE_EXISTS"
	ErrCodeNoAccessToken    = "NO_ACCESS_TOKEN"
	ErrCodeDiscountNotFound = "DISCOUNT_NOT_FOUND"
	ErrCodeRemoteRejected   = "REMOTE_REJECTED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the user-facing message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCodeAlreadyExists   = NewDomainError(ErrCodeCodeExists, "Discount code already exists for this shop")
	ErrAccessTokenNotFound = NewDomainError(ErrCodeNoAccessToken, "Access token not found")
	ErrDiscountNotFound    = NewDomainError(ErrCodeDiscountNotFound, "Discount code not found for the given identifiers")
	ErrMissingPercentage   = NewDomainError(ErrCodeMissingField, "Discount percentage is required")
	ErrMissingCode         = NewDomainError(ErrCodeMissingField, "At least one discount code is required")
	ErrMissingShop         = NewDomainError(ErrCodeMissingField, "Shop is required")
	ErrMissingTitle        = NewDomainError(ErrCodeMissingField, "Title is required")
)

// GenericFailure is the message surfaced for unexpected or remote errors.
const GenericFailure = "Something went wrong"
