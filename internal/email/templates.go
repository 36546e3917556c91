package email

import (
	"fmt"
	"html"
)

func otpBody(code string) string {
	return fmt.Sprintf(`
		<p>Welcome to TechNest!</p>
		<p>Your verification code is: <b>%s</b></p>
		<p>The code expires in 5 minutes.</p>`, html.EscapeString(code))
}

func passwordResetBody(resetLink string) string {
	return fmt.Sprintf(`
		<p>We received a request to reset your TechNest password.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>The link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>`,
		html.EscapeString(resetLink))
}

func contactBody(fromName, fromEmail, body string) string {
	return fmt.Sprintf(`
		<p><b>From:</b> %s (%s)</p>
		<p>%s</p>`,
		html.EscapeString(fromName), html.EscapeString(fromEmail), html.EscapeString(body))
}
