package adaptor

import (
	"encoding/json"
	"net/http"

	"store-rating/internal/dto/request"
	"store-rating/internal/dto/response"
	"store-rating/internal/usecase"
	"store-rating/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type StoreHandler struct {
	service usecase.StoreService
	log     *zap.Logger
}

func NewStoreHandler(service usecase.StoreService, log *zap.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		log:     log,
	}
}

// ListStores handles GET /api/stores. Auth is optional: an authenticated
// caller gets their own rating overlaid on each row.
func (h *StoreHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")

	var userID *uuid.UUID
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	stores, err := h.service.ListStores(r.Context(), search, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list stores")
		return
	}

	utils.ResponseSuccess(w, stores)
}

// SubmitRating handles POST /api/stores/rate
func (h *StoreHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body")
		return
	}

	if err := h.service.SubmitRating(r.Context(), userID, &req); err != nil {
		handleServiceError(w, h.log, err, "submit rating")
		return
	}

	utils.ResponseSuccess(w, response.MessageResponse{Message: "Rating saved"})
}

// MyRatings handles GET /api/stores/me/ratings
func (h *StoreHandler) MyRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	ratings, err := h.service.MyRatings(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "list my ratings")
		return
	}

	utils.ResponseSuccess(w, ratings)
}
