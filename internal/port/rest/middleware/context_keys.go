package middleware

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

// ContextKey keeps request scoped values out of other packages' key space.
type ContextKey string

const (
	// SessionCtxKey holds the *entity.Session of an authenticated request.
	SessionCtxKey = ContextKey("session")
	// TokenCtxKey holds the raw bearer token the session was resolved from.
	TokenCtxKey = ContextKey("token")
)

func WithSession(ctx context.Context, session *entity.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

func SessionFromContext(ctx context.Context) (*entity.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*entity.Session)
	return session, ok && session != nil
}

// UserID is empty for anonymous requests.
func UserID(ctx context.Context) string {
	if session, ok := SessionFromContext(ctx); ok {
		return session.UserID
	}
	return ""
}
