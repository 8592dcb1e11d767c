package adaptor

import (
	"encoding/json"
	"net/http"

	"store-rating/internal/dto/request"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"go.uber.org/zap"
)

// OwnerHandler serves the owner self-service surface. Every operation is
// scoped to the authenticated user id.
type OwnerHandler struct {
	service usecase.OwnerService
	log     *zap.Logger
}

func NewOwnerHandler(service usecase.OwnerService, log *zap.Logger) *OwnerHandler {
	return &OwnerHandler{
		service: service,
		log:     log,
	}
}

// MyStoreRaters handles GET /api/owner/raters
func (h *OwnerHandler) MyStoreRaters(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	raters, err := h.service.MyStoreRaters(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list raters")
		return
	}

	utils.ResponseSuccess(w, raters)
}

// MyStoreAverage handles GET /api/owner/average
func (h *OwnerHandler) MyStoreAverage(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	average, err := h.service.MyStoreAverage(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "compute average")
		return
	}

	utils.ResponseSuccess(w, average)
}

// GetMyStore handles GET /api/owner/store; the body is null when the
// owner has not created a store yet
func (h *OwnerHandler) GetMyStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	store, err := h.service.GetMyStore(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get store")
		return
	}

	if store == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("null"))
		return
	}

	utils.ResponseSuccess(w, store)
}

// UpsertMyStore handles POST /api/owner/store
func (h *OwnerHandler) UpsertMyStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.OwnerStoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	store, created, err := h.service.UpsertMyStore(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upsert store")
		return
	}

	if created {
		utils.ResponseCreated(w, store)
		return
	}
	utils.ResponseSuccess(w, store)
}

// DeleteMyStore handles DELETE /api/owner/store
func (h *OwnerHandler) DeleteMyStore(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.DeleteMyStore(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "delete store")
		return
	}

	utils.ResponseSuccess(w, resp)
}
