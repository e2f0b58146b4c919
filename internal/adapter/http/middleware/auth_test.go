package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

type mockAuthenticator struct{ mock.Mock }

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestBearerAuth(t *testing.T) {
	user := &domain.User{ID: "user-1", Token: "token-a"}

	newHandler := func(auth Authenticator) (http.Handler, *bool, **domain.User) {
		reached := false
		var seen *domain.User
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			seen, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
		return BearerAuth(auth, zap.NewNop())(next), &reached, &seen
	}

	t.Run("NoHeader", func(t *testing.T) {
		auth := new(mockAuthenticator)
		h, reached, _ := newHandler(auth)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/offer/publish", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized access"}`, rec.Body.String())
		assert.False(t, *reached)
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("NotBearer", func(t *testing.T) {
		auth := new(mockAuthenticator)
		h, reached, _ := newHandler(auth)

		req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *reached)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "bad-token").Return(nil, domain.ErrUnauthorized).Once()
		h, reached, _ := newHandler(auth)

		req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, *reached)
		auth.AssertExpectations(t)
	})

	t.Run("ValidToken", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "token-a").Return(user, nil).Once()
		h, reached, seen := newHandler(auth)

		req := httptest.NewRequest(http.MethodPost, "/offer/publish", nil)
		req.Header.Set("Authorization", "Bearer token-a")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, *reached)
		assert.Equal(t, user, *seen)
	})
}
