package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/domain/cart"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/infrastructure/monitoring"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type CartHandler struct {
	cartUseCase *use_cases.CartUseCase
	log         *logger.Logger
}

func NewCartHandler(cartUseCase *use_cases.CartUseCase, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
		log:         log,
	}
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	view, err := h.cartUseCase.GetCart(r.Context(), userID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, view)
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var item cart.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
		return
	}
	if item.CourseID == "" {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "course_id is required")
		return
	}

	view, err := h.cartUseCase.AddItem(r.Context(), userID, item)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartMutation("add")
	response.WriteSuccess(w, view)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request, courseID string) {
	userID := middleware.UserIDFromContext(r.Context())

	if courseID == "" {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "course_id is required")
		return
	}

	view, err := h.cartUseCase.RemoveItem(r.Context(), userID, courseID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartMutation("remove")
	response.WriteSuccess(w, view)
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	if err := h.cartUseCase.ClearCart(r.Context(), userID); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	monitoring.RecordCartMutation("clear")
	response.WriteSuccess(w, map[string]bool{"cleared": true})
}
