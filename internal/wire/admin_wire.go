package wire

import (
	"store-rating/internal/adaptor"
	"store-rating/internal/data/entity"
	"store-rating/pkg/middleware"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	requireAuth := middleware.RequireAuth(config.JWT, log)
	requireAdmin := middleware.RequireRoles(log, string(entity.RoleAdmin))

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(requireAdmin)

		r.Get("/dashboard", adminHandler.DashboardStats)

		r.Post("/users", adminHandler.CreateUser)
		r.Get("/users", adminHandler.ListUsers)
		r.Get("/users/{id}", adminHandler.GetUserDetails)
		r.Put("/users/{id}/owner-id", adminHandler.UpdateOwnerID)
		r.Get("/owners", adminHandler.ListOwners)

		r.Post("/stores", adminHandler.CreateStore)
		r.Get("/stores", adminHandler.ListStores)
		r.Put("/stores/{id}", adminHandler.UpdateStore)
		r.Delete("/stores/{id}", adminHandler.DeleteStore)
	})
}
