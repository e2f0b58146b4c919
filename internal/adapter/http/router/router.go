package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/handler"
	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/middleware"
)

// New assembles the full route table. Mutation routes sit behind the bearer
// auth gate; everything unmatched answers 404 with the {message} envelope.
func New(userHandler *handler.UserHandler, offerHandler *handler.OfferHandler, auth middleware.Authenticator, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing)

	r.Get("/", welcome)

	// Public routes
	r.Post("/user/signup", userHandler.Signup)
	r.Post("/user/login", userHandler.Login)
	r.Get("/offers", offerHandler.List)
	r.Get("/offers/{id}", offerHandler.Get)

	// Protected routes (require a bearer token)
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(middleware.BearerAuth(auth, logger))

		authRouter.Delete("/user/delete/{id}", userHandler.Delete)
		authRouter.Post("/offer/publish", offerHandler.Publish)
		authRouter.Put("/offer/update", offerHandler.Update)
		authRouter.Delete("/offer/delete/{id}", offerHandler.Delete)
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`"Welcome to the Tedvin Server!"`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message":"Not Found"}`))
}
