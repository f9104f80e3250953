package http

import (
	"errors"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP registers a new account. Returns 201 with the public profile,
// 400 with per-field details on validation failure, 409 when the username
// is taken.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req cinesdk.SignupRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if details := req.Validate(); len(details) > 0 {
		cinesdk.NewValidationError(details).WriteError(w)
		return
	}

	user, err := h.AccountService.Signup(ctx, req.Username, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			cinesdk.ErrUsernameTaken.WriteError(w)
			return
		}
		log.Error("signup failed", "err", err)
		cinesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, cinesdk.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}
