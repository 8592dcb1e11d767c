package wire

import (
	"store-rating/internal/adaptor"
	"store-rating/internal/data/entity"
	"store-rating/pkg/middleware"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOwner(
	r chi.Router,
	ownerHandler *adaptor.OwnerHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	requireAuth := middleware.RequireAuth(config.JWT, log)
	requireOwner := middleware.RequireRoles(log, string(entity.RoleOwner))

	r.Route("/api/owner", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireOwner)

		r.Get("/raters", ownerHandler.MyStoreRaters)
		r.Get("/average", ownerHandler.MyStoreAverage)
		r.Get("/store", ownerHandler.GetMyStore)
		r.Post("/store", ownerHandler.UpsertMyStore)
		r.Delete("/store", ownerHandler.DeleteMyStore)
	})
}
