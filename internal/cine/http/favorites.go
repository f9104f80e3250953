package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/domain"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

type FavoritesHandler struct {
	FavoritesService *service.FavoritesService
}

// HandleList returns the caller's favorites in insertion order. An
// account with no favorites gets an empty list, not an error.
func (h *FavoritesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := subject(w, r)
	if !ok {
		return
	}

	favorites, err := h.FavoritesService.List(ctx, userID)
	if err != nil {
		log.Error("failed to list favorites", "user_id", userID, "err", err)
		cinesdk.ErrServerError.WriteError(w)
		return
	}

	resp := cinesdk.ListFavoritesResponse{
		Favorites: make([]cinesdk.FavoriteResponse, 0, len(favorites)),
	}
	for _, f := range favorites {
		resp.Favorites = append(resp.Favorites, mapFavorite(f))
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleAdd bookmarks a catalog title for the caller. Ownership is always
// the authenticated subject, never a body field.
func (h *FavoritesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var req cinesdk.AddFavoriteRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if details := req.Validate(); len(details) > 0 {
		cinesdk.NewValidationError(details).WriteError(w)
		return
	}

	favorite, err := h.FavoritesService.Add(ctx, userID,
		domain.MediaType(req.MediaType), req.MediaID, req.MediaTitle, req.MediaPoster, *req.MediaRate)
	if err != nil {
		log.Error("failed to add favorite", "user_id", userID, "err", err)
		cinesdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, mapFavorite(favorite))
}

// HandleRemove deletes a favorite by id. Someone else's favorite is a
// 403; a missing one is a 404.
func (h *FavoritesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := subject(w, r)
	if !ok {
		return
	}

	favoriteID := r.PathValue("favoriteId")
	if favoriteID == "" {
		cinesdk.ErrNotFound.WriteError(w)
		return
	}

	err := h.FavoritesService.Remove(ctx, userID, favoriteID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFavoriteNotFound):
			cinesdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrNotOwner):
			cinesdk.ErrForbidden.WriteError(w)
		default:
			log.Error("failed to remove favorite", "favorite_id", favoriteID, "err", err)
			cinesdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cinesdk.StatusResponse{Status: "ok"})
}

func mapFavorite(f domain.Favorite) cinesdk.FavoriteResponse {
	return cinesdk.FavoriteResponse{
		ID:          f.ID,
		MediaType:   string(f.MediaType),
		MediaID:     f.MediaID,
		MediaTitle:  f.MediaTitle,
		MediaPoster: f.MediaPoster,
		MediaRate:   f.MediaRate,
		CreatedAt:   f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
