package adaptor

import (
	"encoding/json"
	"net/http"

	"store-rating/internal/data/repository"
	"store-rating/internal/dto/request"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log,
	}
}

// pathID parses the {id} route parameter
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	return id, err == nil
}

// DashboardStats handles GET /api/admin/dashboard
func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "dashboard stats")
		return
	}

	utils.ResponseSuccess(w, stats)
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, user)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.ListUsersParams{
		Query: q.Get("q"),
		Role:  q.Get("role"),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}

	users, err := h.service.ListUsers(r.Context(), params)
	if err != nil {
		handleServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, users)
}

// GetUserDetails handles GET /api/admin/users/{id}
func (h *AdminHandler) GetUserDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id")
		return
	}

	user, err := h.service.GetUserDetails(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user details")
		return
	}

	utils.ResponseSuccess(w, user)
}

// UpdateOwnerID handles PUT /api/admin/users/{id}/owner-id
func (h *AdminHandler) UpdateOwnerID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user id")
		return
	}

	var req request.UpdateOwnerIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.service.UpdateOwnerID(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update owner id")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// ListOwners handles GET /api/admin/owners
func (h *AdminHandler) ListOwners(w http.ResponseWriter, r *http.Request) {
	owners, err := h.service.ListOwners(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list owners")
		return
	}

	utils.ResponseSuccess(w, owners)
}

// CreateStore handles POST /api/admin/stores
func (h *AdminHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req request.AdminStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	store, err := h.service.CreateStore(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create store")
		return
	}

	utils.ResponseCreated(w, store)
}

// UpdateStore handles PUT /api/admin/stores/{id}
func (h *AdminHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid store id")
		return
	}

	var req request.AdminStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	store, err := h.service.UpdateStore(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update store")
		return
	}

	utils.ResponseSuccess(w, store)
}

// DeleteStore handles DELETE /api/admin/stores/{id}
func (h *AdminHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseBadRequest(w, "Invalid store id")
		return
	}

	resp, err := h.service.DeleteStore(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete store")
		return
	}

	utils.ResponseSuccess(w, resp)
}

// ListStores handles GET /api/admin/stores
func (h *AdminHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.ListStoresParams{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}

	stores, err := h.service.ListStores(r.Context(), params)
	if err != nil {
		handleServiceError(w, h.log, err, "list stores")
		return
	}

	utils.ResponseSuccess(w, stores)
}
