package contextkeys

// Custom type so keys cannot collide with other packages.
type contextKey string

// DBContextKey is the key under which the *gorm.DB handle (pool or an
// in-flight transaction) is stored in the request context.
const DBContextKey = contextKey("db")

// SessionContextKey is the key under which the decoded session is stored.
const SessionContextKey = contextKey("session")
