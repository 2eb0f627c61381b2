package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kaloraat/auth-api/internal/middleware"
	"github.com/kaloraat/auth-api/internal/model"
	"github.com/kaloraat/auth-api/internal/service"
)

// UserHandler handles HTTP requests for authenticated profile operations.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleMe handles GET /api/me requests.
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.GetUser(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		h.serverError(w, "me", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUploadImage handles POST /api/upload-image requests carrying a base64
// encoded profile image.
func (h *UserHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.UploadImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UploadImage(r.Context(), accountID, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageRequired), errors.Is(err, service.ErrInvalidImage):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			h.serverError(w, "upload-image", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) serverError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrStoreUnavailable) {
		slog.Error("account store unavailable", "op", op, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("service unavailable"))
		return
	}
	slog.Error("internal error", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
}
