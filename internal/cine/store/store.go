package store

import (
	"context"
	"errors"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and testable.
type Store interface {
	Users() Users
	Favorites() Favorites

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during signin.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the username is taken; the UNIQUE
	// constraint is the atomic enforcement point.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int, error)
}

type Favorites interface {
	// ListFavoritesByUser returns a user's favorites in insertion order.
	ListFavoritesByUser(ctx context.Context, userID string) ([]domain.Favorite, error)

	// GetFavoriteByID returns a favorite by id regardless of owner; the
	// service layer decides between not-found and not-owner.
	GetFavoriteByID(ctx context.Context, id string) (domain.Favorite, error)

	// CreateFavorite inserts a new favorite (id is ULID). Duplicate
	// (user, media) pairs are allowed.
	CreateFavorite(ctx context.Context, f domain.Favorite) error

	// DeleteFavorite removes a favorite by id. Returns ErrNotFound if no
	// row was deleted.
	DeleteFavorite(ctx context.Context, id string) error
}
