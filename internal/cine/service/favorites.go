package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/domain"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/idx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

var (
	// ErrFavoriteNotFound is returned when the favorite id does not exist.
	ErrFavoriteNotFound = errors.New("favorite_not_found")

	// ErrNotOwner is returned when the favorite exists but belongs to a
	// different user. Distinct from not-found so the handler can answer
	// 403 instead of 404.
	ErrNotOwner = errors.New("not_owner")
)

type FavoritesService struct {
	Store store.Store
}

// List returns the user's favorites in insertion order. An empty list is
// not an error.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.Store.Favorites().ListFavoritesByUser(ctx, userID)
}

// Add stores a new favorite owned by userID. Duplicate media entries are
// allowed; each gets its own id.
func (s *FavoritesService) Add(ctx context.Context, userID string, mediaType domain.MediaType, mediaID, title, poster string, rate float64) (domain.Favorite, error) {
	l := slogx.FromContext(ctx)

	favorite := domain.Favorite{
		ID:          idx.New().String(),
		UserID:      userID,
		MediaType:   mediaType,
		MediaID:     mediaID,
		MediaTitle:  title,
		MediaPoster: poster,
		MediaRate:   rate,
	}

	if err := s.Store.Favorites().CreateFavorite(ctx, favorite); err != nil {
		return domain.Favorite{}, err
	}

	l.Info("favorite added",
		slog.String("favorite_id", favorite.ID),
		slog.String("media_type", string(mediaType)),
		slog.String("media_id", mediaID),
	)
	return favorite, nil
}

// Remove deletes a favorite after checking ownership. The lookup and the
// ownership comparison run inside one transaction with the delete, so a
// favorite cannot change hands between check and removal.
func (s *FavoritesService) Remove(ctx context.Context, userID, favoriteID string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		favorite, err := tx.Favorites().GetFavoriteByID(ctx, favoriteID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrFavoriteNotFound
			}
			return err
		}

		if favorite.UserID != userID {
			l.Warn("favorite removal rejected, not owner",
				slog.String("favorite_id", favoriteID),
				slog.String("user_id", userID),
			)
			return ErrNotOwner
		}

		return tx.Favorites().DeleteFavorite(ctx, favoriteID)
	})
	if err != nil {
		return err
	}

	l.Info("favorite removed", slog.String("favorite_id", favoriteID))
	return nil
}
