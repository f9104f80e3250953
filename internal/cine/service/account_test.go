package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store/drivers/sqlite"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cryptox"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "cine-test"

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "cine-service-test-pepper"))
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "cine-test.db") + "?_pragma=busy_timeout(5000)"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAccountService(t *testing.T) *AccountService {
	t.Helper()

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)

	return &AccountService{
		Store:      newTestStore(t),
		KeyManager: km,
		Issuer:     testIssuer,
		TokenTTL:   time.Hour,
	}
}

func TestAccountServiceSignup(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := svc.Signup(ctx, "moviebuff01", "supersecret", "Movie Buff")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "moviebuff01", user.Username)
		require.Equal(t, "Movie Buff", user.DisplayName)

		// Plaintext must never be stored.
		stored, err := svc.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotEqual(t, "supersecret", stored.PasswordHash)
		require.NoError(t, cryptox.VerifyPassword("supersecret", stored.PasswordHash))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, "moviebuff01", "othersecret1", "Other Name")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestAccountServiceSignin(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	user, err := svc.Signup(ctx, "moviebuff01", "supersecret", "Movie Buff")
	require.NoError(t, err)

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		session, err := svc.Signin(ctx, "moviebuff01", "supersecret")
		require.NoError(t, err)
		require.Equal(t, user.ID, session.User.ID)
		require.Equal(t, time.Hour, session.ExpiresIn)

		claims, err := svc.KeyManager.Verifier.Verify(session.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, "moviebuff01", claims.Username)
		require.Equal(t, "Movie Buff", claims.DisplayName)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPassErr := svc.Signin(ctx, "moviebuff01", "wrongsecret")
		_, unknownUserErr := svc.Signin(ctx, "nobodyhere99", "supersecret")

		require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
		require.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)
		require.Equal(t, wrongPassErr, unknownUserErr)
	})
}

func TestAccountServiceUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	user, err := svc.Signup(ctx, "moviebuff01", "supersecret", "Movie Buff")
	require.NoError(t, err)

	t.Run("wrong current password leaves hash unchanged", func(t *testing.T) {
		before, err := svc.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)

		err = svc.UpdatePassword(ctx, user.ID, "wrongsecret", "brandnewsecret")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		after, err := svc.Store.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("correct current password rotates the hash", func(t *testing.T) {
		require.NoError(t, svc.UpdatePassword(ctx, user.ID, "supersecret", "brandnewsecret"))

		_, err := svc.Signin(ctx, "moviebuff01", "supersecret")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Signin(ctx, "moviebuff01", "brandnewsecret")
		require.NoError(t, err)
	})

	t.Run("unknown subject", func(t *testing.T) {
		err := svc.UpdatePassword(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", "whatever123", "brandnewsecret")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAccountServiceGetInfo(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(t)

	user, err := svc.Signup(ctx, "moviebuff01", "supersecret", "Movie Buff")
	require.NoError(t, err)

	t.Run("resolves subject", func(t *testing.T) {
		got, err := svc.GetInfo(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Username, got.Username)
	})

	t.Run("stale subject", func(t *testing.T) {
		_, err := svc.GetInfo(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}
