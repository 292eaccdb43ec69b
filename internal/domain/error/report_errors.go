// Package error defines domain-specific errors for the Pocket Ledger application.
package error

import "errors"

// Report domain errors.
var (
	// ErrSnapshotUnavailable is returned when the entity collections needed for a report cannot be loaded.
	ErrSnapshotUnavailable = errors.New("financial data unavailable")

	// ErrInvalidReportYear is returned when a report is requested for an out-of-range year.
	ErrInvalidReportYear = errors.New("invalid report year")

	// ErrExportFailed is returned when a report file cannot be produced.
	ErrExportFailed = errors.New("failed to export report")
)

// ReportErrorCode defines error codes for dashboard and report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Input errors (01XXXX)
	ErrCodeInvalidReportYear ReportErrorCode = "RPT-010001"

	// Upstream errors (02XXXX)
	ErrCodeSnapshotUnavailable ReportErrorCode = "RPT-020001"
	ErrCodeExportFailed        ReportErrorCode = "RPT-020002"
	ErrCodeDigestFailed        ReportErrorCode = "RPT-020003"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
