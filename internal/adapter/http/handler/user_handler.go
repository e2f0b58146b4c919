package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/middleware"
	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/usecase"
)

const maxUploadSize = 10 << 20 // 10 MiB

type UserService interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	DeleteAccount(ctx context.Context, requester *domain.User, targetID string) error
}

type UserHandler struct {
	users  UserService
	logger *zap.Logger
}

func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.Named("UserHandler"),
	}
}

// authResponse is returned on signup and login. Hash and salt never leave
// the service.
type authResponse struct {
	ID      string         `json:"_id"`
	Token   string         `json:"token"`
	Account domain.Account `json:"account"`
}

func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, domain.ErrMissingParameters)
		return
	}
	newsletter, _ := strconv.ParseBool(r.FormValue("newsletter"))

	in := usecase.RegisterInput{
		Username:   r.FormValue("username"),
		Email:      r.FormValue("email"),
		Password:   r.FormValue("password"),
		Newsletter: newsletter,
		Avatar:     readFormFile(r, "avatar"),
	}

	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		h.logger.Warn("Signup failed", zap.String("email", in.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	h.logger.Info("Signup processed", zap.String("userID", user.ID))
	writeJSON(w, http.StatusCreated, authResponse{ID: user.ID, Token: user.Token, Account: user.Account})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, domain.ErrMissingParameters)
		return
	}

	user, err := h.users.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("email", body.Email), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{ID: user.ID, Token: user.Token, Account: user.Account})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.UserFromContext(r.Context())
	targetID := chi.URLParam(r, "id")

	if err := h.users.DeleteAccount(r.Context(), requester, targetID); err != nil {
		h.logger.Warn("Account deletion failed", zap.String("targetID", targetID), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "User delete success"})
}

// readFormFile returns the uploaded file's bytes, or nil when the part is
// absent or unreadable. Required-file validation happens in the usecase.
func readFormFile(r *http.Request, field string) []byte {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil
	}
	return data
}
