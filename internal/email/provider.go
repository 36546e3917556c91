package email

// Provider sends the application's transactional mail. Implementations must
// be safe for concurrent use; callers treat failures as non-fatal.
type Provider interface {
	SendOTP(to, code string) error
	SendPasswordReset(to, resetLink string) error
	SendContactMessage(fromName, fromEmail, body string) error
}
