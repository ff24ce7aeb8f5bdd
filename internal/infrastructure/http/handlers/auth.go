package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge/checkout-service/internal/application/use_cases"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/middleware"
	"github.com/skillforge/checkout-service/internal/infrastructure/http/response"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

type AuthHandler struct {
	accountUseCase *use_cases.AccountUseCase
	log            *logger.Logger
}

func NewAuthHandler(accountUseCase *use_cases.AccountUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		accountUseCase: accountUseCase,
		log:            log,
	}
}

type otpRequest struct {
	Channel string `json:"channel"`
	Value   string `json:"value"`
	Code    string `json:"code,omitempty"`
}

func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	token := middleware.TokenFromContext(r.Context())

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
		return
	}
	if req.Channel == "" || req.Value == "" {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "channel and value are required")
		return
	}

	result, err := h.accountUseCase.SendOTP(r.Context(), userID, token, req.Channel, req.Value)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	if !result.Sent {
		response.WriteJSON(w, http.StatusTooManyRequests, response.Success(result))
		return
	}

	response.WriteSuccess(w, result)
}

func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	token := middleware.TokenFromContext(r.Context())

	var req otpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "Invalid request body")
		return
	}
	if req.Code == "" {
		response.WriteError(w, http.StatusBadRequest, response.StatusValidationError, "code is required")
		return
	}

	if err := h.accountUseCase.VerifyOTP(r.Context(), token, req.Channel, req.Value, req.Code); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]bool{"verified": true})
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	token := middleware.TokenFromContext(r.Context())

	if err := h.accountUseCase.Logout(r.Context(), userID, token); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]bool{"logged_out": true})
}
