package http

import (
	"errors"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

type UpdatePasswordHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP changes the authenticated user's password. The subject comes
// from the verified token; a wrong current password is the same 401 as a
// failed signin.
func (h *UpdatePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req cinesdk.UpdatePasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if details := req.Validate(); len(details) > 0 {
		cinesdk.NewValidationError(details).WriteError(w)
		return
	}

	err := h.AccountService.UpdatePassword(ctx, userID, req.Password, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			cinesdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			cinesdk.ErrNotFound.WriteError(w)
		default:
			log.Error("update-password failed", "err", err)
			cinesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cinesdk.StatusResponse{Status: "ok"})
}
