package wire

import (
	"store-rating/internal/adaptor"
	"store-rating/pkg/middleware"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStore(
	r chi.Router,
	storeHandler *adaptor.StoreHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	requireAuth := middleware.RequireAuth(config.JWT, log)
	optionalAuth := middleware.OptionalAuth(config.JWT, log)

	r.Route("/api/stores", func(r chi.Router) {
		// Public listing with personalized overlay when authenticated
		r.With(optionalAuth).Get("/", storeHandler.ListStores)

		// Authenticated
		r.With(requireAuth).Post("/rate", storeHandler.SubmitRating)
		r.With(requireAuth).Get("/me/ratings", storeHandler.MyRatings)
	})
}
