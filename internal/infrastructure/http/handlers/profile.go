package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type ProfileHandler struct {
	accountUseCase *use_cases.AccountUseCase
	log            *logger.Logger
}

func NewProfileHandler(accountUseCase *use_cases.AccountUseCase, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		accountUseCase: accountUseCase,
		log:            log,
	}
}

type themePayload struct {
	Theme string `json:"theme"`
}

func (h *ProfileHandler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getTheme(w, r)
	case http.MethodPut:
		h.setTheme(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) getTheme(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	theme, err := h.accountUseCase.GetTheme(r.Context(), userID)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, themePayload{Theme: theme})
}

func (h *ProfileHandler) setTheme(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req themePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
		return
	}

	if err := h.accountUseCase.SetTheme(r.Context(), userID, req.Theme); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, themePayload{Theme: req.Theme})
}
