package wire

import (
	"store-rating/internal/adaptor"
	"store-rating/pkg/middleware"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	requireAuth := middleware.RequireAuth(config.JWT, log)

	r.Route("/api/auth", func(r chi.Router) {
		// Public
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Protected
		r.With(requireAuth).Post("/logout", authHandler.Logout)
		r.With(requireAuth).Post("/password", authHandler.UpdatePassword)
	})
}
