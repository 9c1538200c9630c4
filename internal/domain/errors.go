package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeEmbedding         = "EMBEDDING_ERROR"
	ErrCodeDimensionMismatch = "DIMENSION_MISMATCH"
	ErrCodeStorage           = "STORAGE_UNAVAILABLE"
	ErrCodeGeneration        = "GENERATION_ERROR"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrEmptyQuery           = NewDomainError(ErrCodeValidation, "query text is required")
)

// Not found errors
var (
	ErrFileNotFound    = NewDomainError(ErrCodeNotFound, "journal file not found")
	ErrProfileNotFound = NewDomainError(ErrCodeNotFound, "profile not found")
)

// Retrieval errors. Corrupt or mis-sized stored vectors are skip-and-log
// conditions inside search, never query aborts.
var (
	ErrVectorCorrupt     = NewDomainError(ErrCodeEmbedding, "stored vector cannot be decoded")
	ErrDimensionMismatch = NewDomainError(ErrCodeDimensionMismatch, "stored vector has wrong dimensionality")
)

// Collaborator errors. Storage failures abort the whole query; generation
// failures surface a user-facing fallback without an automatic retry.
var (
	ErrStorageUnavailable = NewDomainError(ErrCodeStorage, "journal storage is unavailable")
	ErrGenerationFailed   = NewDomainError(ErrCodeGeneration, "the writing assistant could not produce a response, please try again")
)
