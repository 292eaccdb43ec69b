// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/pocketledger/backend/internal/application/adapter"
	domainerror "github.com/pocketledger/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// WithBaseURL points the client at another Resend-compatible endpoint.
func (c *ResendClient) WithBaseURL(raw string) (*ResendClient, error) {
	u, err := url.Parse(strings.TrimRight(raw, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = u
	return c, nil
}

// NewSender returns a Resend sender, or a sender that always reports the missing configuration
// when no API key is set.
func NewSender(apiKey, fromName, fromEmail string) adapter.EmailSender {
	if apiKey == "" {
		return DisabledSender{}
	}
	return NewResendClient(apiKey, fromName, fromEmail)
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = fmt.Sprintf("%s <%s>", input.Name, input.To)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, err),
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"temporary email failure",
			fmt.Errorf("%w: %w", domainerror.ErrEmailSendFailed, err),
		)
	}

	return &adapter.SendEmailResult{
		ProviderID: resp.Id,
	}, nil
}

// isPermanentError reports whether Resend rejected the request itself (401, 403, 422)
// rather than failing transiently (429, 5xx).
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// DisabledSender is used when no email provider is configured.
type DisabledSender struct{}

// Send always fails with ErrEmailNotConfigured.
func (DisabledSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	return nil, domainerror.NewEmailError(
		domainerror.ErrCodeEmailNotConfigured,
		"email delivery is not configured",
		domainerror.ErrEmailNotConfigured,
	)
}

// MockEmailSender records emails instead of sending them. Used by the integration suite.
type MockEmailSender struct {
	mu         sync.Mutex
	SentEmails []adapter.SendEmailInput
	FailError  error
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{SentEmails: make([]adapter.SendEmailInput, 0)}
}

// Send implements the adapter.EmailSender interface for testing.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailError != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"mock temporary failure",
			m.FailError,
		)
	}

	m.SentEmails = append(m.SentEmails, input)
	return &adapter.SendEmailResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.SentEmails)),
	}, nil
}

// Sent returns a copy of the recorded emails.
func (m *MockEmailSender) Sent() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), m.SentEmails...)
}

// Reset clears recorded emails and the failure.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = make([]adapter.SendEmailInput, 0)
	m.FailError = nil
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = DisabledSender{}
	_ adapter.EmailSender = (*MockEmailSender)(nil)
)
