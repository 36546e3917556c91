package app

import (
	"technest_backend/internal/logger"
)

// MockEmailProvider logs outgoing mail instead of sending it. Used when no
// SMTP host is configured (local development).
type MockEmailProvider struct{}

func (m *MockEmailProvider) SendOTP(to, code string) error {
	logger.Info("mock email: otp", "to", to, "code", code)
	return nil
}

func (m *MockEmailProvider) SendPasswordReset(to, resetLink string) error {
	logger.Info("mock email: password reset", "to", to, "link", resetLink)
	return nil
}

func (m *MockEmailProvider) SendContactMessage(fromName, fromEmail, body string) error {
	logger.Info("mock email: contact message", "from_name", fromName, "from_email", fromEmail)
	return nil
}
