package http

import (
	"errors"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

type SigninHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP authenticates and returns the profile plus a session token.
// All credential failures are the same 401.
func (h *SigninHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req cinesdk.SigninRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if details := req.Validate(); len(details) > 0 {
		cinesdk.NewValidationError(details).WriteError(w)
		return
	}

	session, err := h.AccountService.Signin(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			cinesdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("signin failed", "err", err)
		cinesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cinesdk.SigninResponse{
		User: cinesdk.UserResponse{
			ID:          session.User.ID,
			Username:    session.User.Username,
			DisplayName: session.User.DisplayName,
		},
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(session.ExpiresIn.Seconds()),
	})
}
