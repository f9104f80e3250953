package sqlite

import (
	"context"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/domain"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
)

type favoritesRepo struct {
	db dbtx
}

const favoriteColumns = `id, user_id, media_type, media_id, media_title, media_poster, media_rate, created_at`

func (r *favoritesRepo) ListFavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	// ULIDs sort lexicographically by creation time, so ordering by id
	// gives insertion order with sub-second stability.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *favoritesRepo) GetFavoriteByID(ctx context.Context, id string) (domain.Favorite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+favoriteColumns+` FROM favorites WHERE id = ?`, id)
	return scanFavorite(row)
}

func (r *favoritesRepo) CreateFavorite(ctx context.Context, f domain.Favorite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, media_type, media_id, media_title, media_poster, media_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, string(f.MediaType), f.MediaID, f.MediaTitle, f.MediaPoster, f.MediaRate,
	)
	return err
}

func (r *favoritesRepo) DeleteFavorite(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanFavorite(row rowScanner) (domain.Favorite, error) {
	var f domain.Favorite
	var mediaType string
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&mediaType,
		&f.MediaID,
		&f.MediaTitle,
		&f.MediaPoster,
		&f.MediaRate,
		&f.CreatedAt,
	)
	if err != nil {
		return domain.Favorite{}, mapNotFound(err)
	}
	f.MediaType = domain.MediaType(mediaType)
	return f, nil
}
