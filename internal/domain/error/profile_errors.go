package error

import "errors"

// Profile domain errors.
var (
	// ErrInvalidBaseSalary is returned when base_salary is negative.
	ErrInvalidBaseSalary = errors.New("base_salary must be zero or positive")

	// ErrInvalidSavingRate is returned when saving_rate is outside [0, 1].
	ErrInvalidSavingRate = errors.New("saving_rate must be between 0 and 1")

	// ErrEmptyProfilePatch is returned when a profile update carries no fields.
	ErrEmptyProfilePatch = errors.New("nothing to update")
)

// ProfileErrorCode defines error codes for profile errors.
type ProfileErrorCode string

const (
	ErrCodeInvalidBaseSalary ProfileErrorCode = "PRF-010001"
	ErrCodeInvalidSavingRate ProfileErrorCode = "PRF-010002"
	ErrCodeEmptyProfilePatch ProfileErrorCode = "PRF-010003"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
