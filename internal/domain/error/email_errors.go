// Package error defines domain-specific errors for the Pocket Ledger application.
package error

import "errors"

// Email domain errors.
var (
	// ErrEmailSendFailed is returned when an email fails to be sent.
	ErrEmailSendFailed = errors.New("failed to send email")

	// ErrTemplateRenderFailed is returned when email template rendering fails.
	ErrTemplateRenderFailed = errors.New("failed to render email template")

	// ErrEmailNotConfigured is returned when no email provider is configured.
	ErrEmailNotConfigured = errors.New("email delivery is not configured")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Delivery errors (02XXXX). A permanent failure is a rejection by the provider that
	// resending will not fix; a temporary one is worth another attempt on the next run.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"
	ErrCodeEmailNotConfigured    EmailErrorCode = "EMAIL-020004"
)

// EmailError represents an email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// IsTemporaryEmailFailure reports whether err carries a temporary delivery failure.
func IsTemporaryEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Code == ErrCodeTemporaryEmailFailure
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
