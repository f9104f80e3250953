package http

import (
	"errors"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

type InfoHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP returns the authenticated user's profile. A valid token whose
// subject no longer resolves (account deleted) is a 404, not a 401.
func (h *InfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := subject(w, r)
	if !ok {
		return
	}

	user, err := h.AccountService.GetInfo(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			cinesdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to load user", "user_id", userID, "err", err)
		cinesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cinesdk.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}
