package error

import "errors"

// Ledger store errors.
var (
	// ErrStoreUnavailable marks a transient store failure the caller may retry.
	ErrStoreUnavailable = errors.New("ledger store unavailable")

	// ErrStoreFailure marks a store failure that retrying will not fix.
	ErrStoreFailure = errors.New("ledger store failure")
)

// StoreErrorCode defines error codes for store errors.
type StoreErrorCode string

const (
	ErrCodeStoreUnavailable StoreErrorCode = "LDG-020001"
	ErrCodeStoreFailure     StoreErrorCode = "LDG-020002"
	ErrCodeInvalidMonth     StoreErrorCode = "LDG-010001"
)

// StoreError wraps a driver error with its retry classification.
type StoreError struct {
	Code      StoreErrorCode
	Op        string
	Retryable bool
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	kind := ErrStoreFailure
	if e.Retryable {
		kind = ErrStoreUnavailable
	}
	if e.Err != nil {
		return e.Op + ": " + kind.Error() + ": " + e.Err.Error()
	}
	return e.Op + ": " + kind.Error()
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches ErrStoreUnavailable or ErrStoreFailure according to Retryable.
func (e *StoreError) Is(target error) bool {
	if e.Retryable {
		return target == ErrStoreUnavailable
	}
	return target == ErrStoreFailure
}

// NewStoreError creates a new StoreError for the named repository operation.
func NewStoreError(op string, retryable bool, err error) *StoreError {
	code := ErrCodeStoreFailure
	if retryable {
		code = ErrCodeStoreUnavailable
	}
	return &StoreError{
		Code:      code,
		Op:        op,
		Retryable: retryable,
		Err:       err,
	}
}
