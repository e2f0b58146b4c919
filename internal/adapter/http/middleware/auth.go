package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

// Authenticator resolves a bearer token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// BearerAuth guards mutation routes. It resolves the Authorization bearer
// token to exactly one user and attaches it to the request context; any
// missing, malformed or unknown credential stops the request with 401.
func BearerAuth(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	log := logger.Named("BearerAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				log.Warn("Rejected request with invalid token", zap.String("path", r.URL.Path))
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": domain.ErrUnauthorized.Error()})
}
