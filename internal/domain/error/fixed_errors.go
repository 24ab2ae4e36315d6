package error

import "errors"

// Fixed template and instance domain errors.
var (
	// ErrTemplateNotFound is returned when a template does not exist or belongs to another user.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateNameRequired is returned when a template has no name.
	ErrTemplateNameRequired = errors.New("name is required")

	// ErrInvalidTemplateAmount is returned when a template amount is missing or not positive.
	ErrInvalidTemplateAmount = errors.New("amount must be a positive number")

	// ErrInvalidDueDay is returned when due_day is outside 1..31.
	ErrInvalidDueDay = errors.New("due_day must be between 1 and 31")

	// ErrEmptyTemplatePatch is returned when an update carries no fields.
	ErrEmptyTemplatePatch = errors.New("nothing to update")

	// ErrFixedInstanceNotFound is returned when an instance is absent, deleted
	// or owned by another user. The three cases are indistinguishable on purpose.
	ErrFixedInstanceNotFound = errors.New("fixed instance not found")
)

// FixedErrorCode defines error codes for template and instance errors.
// Format: FIX-XXYYYY where XX is category and YYYY is specific error.
type FixedErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTemplateNameRequired   FixedErrorCode = "FIX-010001"
	ErrCodeInvalidTemplateAmount  FixedErrorCode = "FIX-010002"
	ErrCodeInvalidDueDay          FixedErrorCode = "FIX-010003"
	ErrCodeTemplateCategory       FixedErrorCode = "FIX-010004"
	ErrCodeEmptyTemplatePatch     FixedErrorCode = "FIX-010005"
	ErrCodeTemplateNotFound       FixedErrorCode = "FIX-010006"
	ErrCodeFixedInstanceNotFound  FixedErrorCode = "FIX-010007"
	ErrCodeInvalidFixedInstanceID FixedErrorCode = "FIX-010008"
	ErrCodeInvalidTemplateID      FixedErrorCode = "FIX-010009"
)

// FixedError represents a template or instance error with code and message.
type FixedError struct {
	Code    FixedErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FixedError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FixedError) Unwrap() error {
	return e.Err
}

// NewFixedError creates a new FixedError with the given code and message.
func NewFixedError(code FixedErrorCode, message string, err error) *FixedError {
	return &FixedError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
