package ledger

import (
	"errors"
	"fmt"
)

// Kind classifies ledger failures so the HTTP layer can pick a status code
// without inspecting individual error codes.
type Kind int

const (
	KindValidation Kind = iota + 1 // malformed or missing input
	KindConflict                   // duplicate serial, double assignment, tag exhaustion
	KindNotFound                   // unknown asset, user or assignment
	KindPersistence                // underlying store failure
)

// Machine-stable error codes surfaced to API clients.
const (
	CodeInvalidParam       = "INVALID_PARAM"
	CodeDuplicateSerial    = "DUPLICATE_SERIAL_NUMBER"
	CodeTagExhausted       = "TAG_NUMBER_EXHAUSTED"
	CodeAssetNotFound      = "ASSET_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeAssetUnavailable   = "ASSET_UNAVAILABLE"
	CodeAssetNotAssigned   = "ASSET_NOT_ASSIGNED"
	CodeAssetAssigned      = "ASSET_CURRENTLY_ASSIGNED"
	CodeStorageFailure     = "STORAGE_FAILURE"
	CodeAssignmentNotFound = "ASSIGNMENT_NOT_FOUND"
)

// Error is the only error type returned by Service operations. Wrapped
// store errors are kept for logging but never exposed to clients.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func validation(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func conflict(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

func notFound(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func persistence(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindPersistence, Code: CodeStorageFailure, Message: fmt.Sprintf(format, args...), Err: err}
}

// AsError unwraps err into a ledger *Error, or nil if it is not one.
func AsError(err error) *Error {
	var le *Error
	if errors.As(err, &le) {
		return le
	}
	return nil
}
