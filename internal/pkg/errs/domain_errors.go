package errs

import "errors"

// Operation-level sentinels shared by the command and query layers
var (
	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrEventAppendFailed       = errors.New("booking event append failed")
)
