package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/domain"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cryptox"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/idx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrUsernameTaken is returned when signup collides with an existing
	// username.
	ErrUsernameTaken = errors.New("username_taken")

	// ErrUserNotFound is returned when a token subject no longer resolves
	// to an account.
	ErrUserNotFound = errors.New("user_not_found")
)

// Session is a freshly minted session token plus the authenticated user.
type Session struct {
	User        domain.User
	AccessToken string
	ExpiresIn   time.Duration
}

type AccountService struct {
	Store      store.Store
	KeyManager *jwtx.KeyManager
	Issuer     string
	TokenTTL   time.Duration
}

// Signup registers a new account. The username collision is enforced by
// the storage UNIQUE constraint, so concurrent signups of the same name
// cannot both succeed.
func (s *AccountService) Signup(ctx context.Context, username, password, displayName string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("signup rejected, username taken", slog.String("username", username))
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	return user, nil
}

// Signin verifies the credentials and mints a session token. Unknown
// username and wrong password return the same error.
func (s *AccountService) Signin(ctx context.Context, username, password string) (*Session, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash verification anyway so the unknown-username
			// path takes as long as the wrong-password path.
			_ = cryptox.VerifyPassword(password, dummyHash())
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("signin failed", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	l.Info("signin succeeded", slog.String("user_id", user.ID))
	return &Session{
		User:        user,
		AccessToken: token,
		ExpiresIn:   s.tokenTTL(),
	}, nil
}

// UpdatePassword re-verifies the current password before storing the new
// hash. A wrong current password is the same ErrInvalidCredentials as a
// failed signin.
func (s *AccountService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
		l.Info("update-password rejected, current password mismatch", slog.String("user_id", userID))
		return ErrInvalidCredentials
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, userID, newHash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	l.Info("password updated", slog.String("user_id", userID))
	return nil
}

// GetInfo resolves a token subject to its account. Returns ErrUserNotFound
// when the subject is stale (account deleted after the token was minted).
func (s *AccountService) GetInfo(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *AccountService) mintToken(user domain.User) (string, error) {
	claims := jwtx.NewSessionClaims(
		user.ID,
		user.Username,
		user.DisplayName,
		s.tokenTTL(),
		s.Issuer,
		time.Now().UTC(),
	)
	return s.KeyManager.GetSigner().Sign(claims)
}

func (s *AccountService) tokenTTL() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultSessionTokenTTL
}

// dummyHash returns a throwaway argon2id hash verified on the
// unknown-username path to keep signin timing uniform. Computed lazily so
// the pepper path is configured before the first hash.
var dummyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("timing-equalizer")
	if err != nil {
		return ""
	}
	return h
})
