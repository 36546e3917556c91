package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"technest_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// writeContext returns a context to write cookies into and the recorder
// capturing them.
func writeContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	return c, w
}

// readContext builds a request carrying the Set-Cookie output of a previous
// write, as a browser would.
func readContext(w *httptest.ResponseRecorder) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, cookie := range w.Result().Cookies() {
		c.Request.AddCookie(cookie)
	}
	return c
}

func TestSessionRoundtrip(t *testing.T) {
	m := NewManager("test-secret", "", false)
	c, w := writeContext()

	require.NoError(t, m.Write(c, &Session{UserID: "ind-abc123", Role: models.RoleIndividual}))

	got := m.Read(readContext(w))
	require.NotNil(t, got)
	assert.Equal(t, "ind-abc123", got.UserID)
	assert.Equal(t, models.RoleIndividual, got.Role)
	assert.Nil(t, got.Signup)
}

func TestSessionCarriesSignupState(t *testing.T) {
	m := NewManager("test-secret", "", false)
	c, w := writeContext()

	require.NoError(t, m.Write(c, &Session{Signup: &SignupState{
		Email:         "alice@test.local",
		PasswordHash:  "hash",
		Role:          models.RoleIndividual,
		Code:          "123456",
		CodeExpiresAt: time.Now().Add(OTPLifetime).Truncate(time.Second),
	}}))

	got := m.Read(readContext(w))
	require.NotNil(t, got)
	assert.Empty(t, got.UserID)
	require.NotNil(t, got.Signup)
	assert.Equal(t, "123456", got.Signup.Code)
	assert.Equal(t, "alice@test.local", got.Signup.Email)
}

func TestSessionRejectsTampering(t *testing.T) {
	m := NewManager("test-secret", "", false)
	c, w := writeContext()
	require.NoError(t, m.Write(c, &Session{UserID: "ind-abc123"}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	read, _ := gin.CreateTestContext(httptest.NewRecorder())
	read.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	tampered := *cookies[0]
	tampered.Value = strings.TrimRight(tampered.Value, "A") + "AA"
	read.Request.AddCookie(&tampered)

	assert.Nil(t, m.Read(read))
}

func TestSessionRejectsForeignSecret(t *testing.T) {
	signer := NewManager("secret-one", "", false)
	verifier := NewManager("secret-two", "", false)

	c, w := writeContext()
	require.NoError(t, signer.Write(c, &Session{UserID: "ind-abc123"}))

	assert.Nil(t, verifier.Read(readContext(w)))
}

func TestRememberStretchesCookieLifetime(t *testing.T) {
	m := NewManager("test-secret", "", false)

	c, w := writeContext()
	require.NoError(t, m.Write(c, &Session{UserID: "ind-abc123", Remember: true}))
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, int(RememberLifetime.Seconds()), w.Result().Cookies()[0].MaxAge)

	c, w = writeContext()
	require.NoError(t, m.Write(c, &Session{UserID: "ind-abc123"}))
	assert.Equal(t, int(DefaultLifetime.Seconds()), w.Result().Cookies()[0].MaxAge)
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewManager("test-secret", "", false)
	c, w := writeContext()

	m.Clear(c)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAdminSessionRoundtrip(t *testing.T) {
	m := NewManager("test-secret", "", false)
	c, w := writeContext()

	require.NoError(t, m.WriteAdmin(c, "root"))
	assert.Equal(t, "root", m.ReadAdmin(readContext(w)))

	// Admin and member cookies do not cross over.
	assert.Nil(t, m.Read(readContext(w)))
}
