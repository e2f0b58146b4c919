package middleware

import (
	"context"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

// ContextKey is a dedicated type for context keys to avoid collisions.
type ContextKey string

// UserCtxKey holds the authenticated user resolved by BearerAuth.
const UserCtxKey = ContextKey("user")

// UserFromContext extracts the authenticated user attached by BearerAuth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*domain.User)
	return user, ok
}
