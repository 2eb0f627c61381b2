package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kaloraat/auth-api/internal/middleware"
	"github.com/kaloraat/auth-api/internal/model"
	"github.com/kaloraat/auth-api/internal/service"
)

// AuthHandler handles HTTP requests for the credential lifecycle.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Signup(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorResponse(vErr.Message))
		case errors.Is(err, service.ErrEmailTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			h.serverError(w, "signup", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleSignin handles POST /api/signin requests.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Signin(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			h.serverError(w, "signin", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleForgotPassword handles POST /api/forgot-password requests. When the
// code was stored but the email could not be delivered, the response is a 200
// with ok=false: the code is still redeemable and must not look like it was
// discarded.
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ForgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMailDeliveryFailed):
			slog.Warn("reset code stored but mail delivery failed", "error", err)
			writeJSON(w, http.StatusOK, model.OKResponse{OK: false})
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			h.serverError(w, "forgot-password", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

// HandleResetPassword handles POST /api/reset-password requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req model.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.ResetPassword(r.Context(), req)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrInvalidResetCode):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorResponse(vErr.Message))
		default:
			h.serverError(w, "reset-password", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, model.OKResponse{OK: true})
}

// HandleUpdatePassword handles POST /api/update-password requests for
// authenticated accounts.
func (h *AuthHandler) HandleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UpdatePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UpdatePassword(r.Context(), accountID, req.Password)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorResponse(vErr.Message))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			h.serverError(w, "update-password", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) serverError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		slog.Error("account store unavailable", "op", op, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("service unavailable"))
		return
	}
	slog.Error("internal error", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
