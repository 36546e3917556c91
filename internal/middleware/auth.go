package middleware

import (
	"technest_backend/internal/models"
	"technest_backend/internal/session"
	"technest_backend/pkg/apperrors"
	"technest_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware decodes the session cookie when present and stores it in
// the gin context. Logged-in sessions get their sliding window refreshed.
// Anonymous requests pass through; route guards decide what requires auth.
func SessionMiddleware(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := manager.Read(c)
		if s != nil {
			c.Set(string(contextkeys.SessionContextKey), s)

			// Refresh the sliding window for authenticated users.
			if s.UserID != "" {
				if err := manager.Write(c, s); err == nil {
					c.Set(string(contextkeys.SessionContextKey), s)
				}
			}
		}
		c.Next()
	}
}

// GetSession returns the decoded session from the gin context, or nil.
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(string(contextkeys.SessionContextKey))
	if !exists {
		return nil
	}
	s, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return s
}

// RequireAuth rejects requests without a logged-in session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s == nil || s.UserID == "" {
			abortWith(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		c.Next()
	}
}

// RequireRole additionally checks the session role.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := GetSession(c)
		if s == nil || s.UserID == "" {
			abortWith(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		if s.Role != role {
			abortWith(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// RequireAdmin guards the admin console routes. The admin cookie is separate
// from the member session.
func RequireAdmin(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := manager.ReadAdmin(c)
		if username == "" {
			abortWith(c, apperrors.NewUnauthorizedError("Admin authentication required"))
			return
		}
		c.Set("admin_username", username)
		c.Next()
	}
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPCode, apperrors.ErrorResponse{Error: appErr})
}
