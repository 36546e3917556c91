package session

import (
	"net/http"
	"time"

	"technest_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	memberCookie = "tn_session"
	adminCookie  = "tn_admin"

	// DefaultLifetime is the sliding session window; RememberLifetime applies
	// when the user checks "remember me" at login.
	DefaultLifetime  = 30 * time.Minute
	RememberLifetime = 30 * 24 * time.Hour

	// OTPLifetime bounds the verification code; MaxOTPResends caps re-sends
	// within one signup attempt.
	OTPLifetime   = 5 * time.Minute
	MaxOTPResends = 2
)

// SignupState is the signup-in-progress scratch data carried inside the
// signed cookie until the account row exists. Only a bcrypt hash of the
// password is stored, never the plaintext.
type SignupState struct {
	Email         string      `json:"email"`
	PasswordHash  string      `json:"password_hash"`
	Role          models.Role `json:"role"`
	CompanyName   string      `json:"company_name,omitempty"`
	Code          string      `json:"code"`
	CodeExpiresAt time.Time   `json:"code_expires_at"`
	ResendCount   int         `json:"resend_count"`
	Verified      bool        `json:"verified"`
}

// Session is the decoded member session. UserID is empty until login or
// registration completes; Signup is non-nil only mid-signup.
type Session struct {
	UserID   string       `json:"user_id,omitempty"`
	Role     models.Role  `json:"role,omitempty"`
	Remember bool         `json:"remember,omitempty"`
	Signup   *SignupState `json:"signup,omitempty"`
}

type memberClaims struct {
	Session
	jwt.RegisteredClaims
}

type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager signs and verifies the session cookies (HS256). The cookie is the
// only session store; there is no server-side session table.
type Manager struct {
	secret []byte
	domain string
	secure bool
}

func NewManager(secret, domain string, secure bool) *Manager {
	return &Manager{
		secret: []byte(secret),
		domain: domain,
		secure: secure,
	}
}

// Write signs the session into the member cookie. Remember stretches the
// lifetime to RememberLifetime.
func (m *Manager) Write(c *gin.Context, s *Session) error {
	lifetime := DefaultLifetime
	if s.Remember {
		lifetime = RememberLifetime
	}

	claims := memberClaims{
		Session: *s,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	m.setCookie(c, memberCookie, signed, int(lifetime.Seconds()))
	return nil
}

// Read returns the decoded member session, or nil when the cookie is
// missing, tampered with or expired.
func (m *Manager) Read(c *gin.Context) *Session {
	value, err := c.Cookie(memberCookie)
	if err != nil || value == "" {
		return nil
	}

	var claims memberClaims
	token, err := jwt.ParseWithClaims(value, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}

	s := claims.Session
	return &s
}

func (m *Manager) Clear(c *gin.Context) {
	m.setCookie(c, memberCookie, "", -1)
}

// WriteAdmin signs the admin cookie. Admin sessions never use remember-me.
func (m *Manager) WriteAdmin(c *gin.Context, username string) error {
	claims := adminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(DefaultLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	m.setCookie(c, adminCookie, signed, int(DefaultLifetime.Seconds()))
	return nil
}

// ReadAdmin returns the admin username, or "" when unauthenticated.
func (m *Manager) ReadAdmin(c *gin.Context) string {
	value, err := c.Cookie(adminCookie)
	if err != nil || value == "" {
		return ""
	}

	var claims adminClaims
	token, err := jwt.ParseWithClaims(value, &claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}

	return claims.Username
}

func (m *Manager) ClearAdmin(c *gin.Context) {
	m.setCookie(c, adminCookie, "", -1)
}

func (m *Manager) keyFunc(token *jwt.Token) (interface{}, error) {
	return m.secret, nil
}

func (m *Manager) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", m.domain, m.secure, true)
}
