package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrConfigRead         = fmt.Errorf("config read failed")
	ErrConfigParse        = fmt.Errorf("config parse failed")
	ErrConfigWrite        = fmt.Errorf("config write failed")
	ErrDecryption         = fmt.Errorf("decryption failed")
	ErrCatalogUnavailable = fmt.Errorf("model catalog unavailable")
	ErrCancelled          = fmt.Errorf("cancelled by user")
	ErrNotInteractive     = fmt.Errorf("terminal is not interactive")
	ErrProbeFailed        = fmt.Errorf("probe failed")
	ErrNotFound           = fmt.Errorf("not found")
)

// DomainError wraps a sentinel error with context.
type DomainError struct {
	Op     string // operation name (e.g., "setup.Finalize")
	Err    error  // underlying sentinel or wrapped error
	Detail string // human-readable detail
}

func (e *DomainError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewDomainError creates a new DomainError.
func NewDomainError(op string, err error, detail string) *DomainError {
	return &DomainError{Op: op, Err: err, Detail: detail}
}

// WrapOp adds operation context to an error using fmt.Errorf wrapping.
// Returns nil if err is nil, enabling idiomatic use: return domain.WrapOp("op", err)
func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// ErrorCode is a machine-parseable error category, used as a log attribute.
type ErrorCode string

const (
	CodeUnknown            ErrorCode = "UNKNOWN"
	CodeConfigRead         ErrorCode = "CONFIG_READ"
	CodeConfigParse        ErrorCode = "CONFIG_PARSE"
	CodeConfigWrite        ErrorCode = "CONFIG_WRITE"
	CodeDecryption         ErrorCode = "DECRYPTION"
	CodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	CodeCancelled          ErrorCode = "CANCELLED"
	CodeNotInteractive     ErrorCode = "NOT_INTERACTIVE"
	CodeProbeFailed        ErrorCode = "PROBE_FAILED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
)

var errorCodeMap = map[error]ErrorCode{
	ErrConfigRead:         CodeConfigRead,
	ErrConfigParse:        CodeConfigParse,
	ErrConfigWrite:        CodeConfigWrite,
	ErrDecryption:         CodeDecryption,
	ErrCatalogUnavailable: CodeCatalogUnavailable,
	ErrCancelled:          CodeCancelled,
	ErrNotInteractive:     CodeNotInteractive,
	ErrProbeFailed:        CodeProbeFailed,
	ErrNotFound:           CodeNotFound,
}

// ErrorCodeOf returns the machine-parseable error code for the given error.
// Returns CodeUnknown if no matching sentinel is found.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}
	if code, ok := errorCodeMap[err]; ok {
		return code
	}
	var de *DomainError
	if errors.As(err, &de) {
		if code, ok := errorCodeMap[de.Err]; ok {
			return code
		}
	}
	for sentinel, code := range errorCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return CodeUnknown
}

// Code returns the ErrorCode for this DomainError's underlying sentinel.
func (e *DomainError) Code() ErrorCode {
	return ErrorCodeOf(e.Err)
}
