package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/service"
	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store/drivers/sqlite"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cryptox"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "cine-test"

func TestMain(m *testing.M) {
	cryptox.SetPepperPath(filepath.Join(os.TempDir(), "cine-http-test-pepper"))
	os.Exit(m.Run())
}

func floatPtr(f float64) *float64 { return &f }

// newTestServer wires a full server against a temp sqlite database and
// returns a client pointed at it. Each call gets fresh rate limiters, so
// tests do not starve each other.
func newTestServer(t *testing.T) *cinesdk.Client {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "cine-test.db") + "?_pragma=busy_timeout(5000)"
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := NewRouter(km.KeySet, km.Verifier, "test", st, logger)
	router.AccountService = &service.AccountService{
		Store:      st,
		KeyManager: km,
		Issuer:     testIssuer,
		TokenTTL:   time.Hour,
	}
	router.FavoritesService = &service.FavoritesService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return cinesdk.NewClient(server.URL)
}

func signupAndSignin(t *testing.T, client *cinesdk.Client, username string) *cinesdk.UserResponse {
	t.Helper()
	ctx := context.Background()

	user, err := client.Signup(ctx, cinesdk.SignupRequest{
		Username:        username,
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		DisplayName:     "Display " + username,
	})
	require.NoError(t, err)

	_, err = client.Signin(ctx, cinesdk.SigninRequest{
		Username: username,
		Password: "supersecret",
	})
	require.NoError(t, err)

	return user
}

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	user, err := client.Signup(ctx, cinesdk.SignupRequest{
		Username:        "moviebuff01",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		DisplayName:     "Movie Buff",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "moviebuff01", user.Username)

	t.Run("duplicate signup is a conflict", func(t *testing.T) {
		_, err := client.Signup(ctx, cinesdk.SignupRequest{
			Username:        "moviebuff01",
			Password:        "othersecret1",
			ConfirmPassword: "othersecret1",
			DisplayName:     "Impostor Name",
		})
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})

	t.Run("signin with wrong password is 401", func(t *testing.T) {
		_, err := client.Signin(ctx, cinesdk.SigninRequest{
			Username: "moviebuff01",
			Password: "wrongsecret",
		})
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("signin returns a working token", func(t *testing.T) {
		session, err := client.Signin(ctx, cinesdk.SigninRequest{
			Username: "moviebuff01",
			Password: "supersecret",
		})
		require.NoError(t, err)
		require.Equal(t, "Bearer", session.TokenType)
		require.Equal(t, user.ID, session.User.ID)

		info, err := client.GetInfo(ctx)
		require.NoError(t, err)
		require.Equal(t, user.ID, info.ID)
		require.Equal(t, "Movie Buff", info.DisplayName)
	})

	t.Run("update password rotates credentials", func(t *testing.T) {
		require.NoError(t, client.UpdatePassword(ctx, cinesdk.UpdatePasswordRequest{
			Password:           "supersecret",
			NewPassword:        "brandnewsecret",
			ConfirmNewPassword: "brandnewsecret",
		}))

		_, err := client.Signin(ctx, cinesdk.SigninRequest{
			Username: "moviebuff01",
			Password: "brandnewsecret",
		})
		require.NoError(t, err)
	})
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	_, err := client.Signup(ctx, cinesdk.SignupRequest{
		Username:        "short",
		Password:        "short",
		ConfirmPassword: "short",
		DisplayName:     "short",
	})

	var valErr *cinesdk.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Details, 4)
	require.Contains(t, valErr.Details, "username")
	require.Contains(t, valErr.Details, "displayName")
}

func TestSigninValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	_, err := client.Signin(ctx, cinesdk.SigninRequest{
		Username: "short",
		Password: "short",
	})

	var valErr *cinesdk.ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Details, 2)
	require.Contains(t, valErr.Details, "username")
	require.Contains(t, valErr.Details, "password")
}

func TestFavoritesFlow(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)
	signupAndSignin(t, client, "alicewatches")

	matrix, err := client.AddFavorite(ctx, cinesdk.AddFavoriteRequest{
		MediaType:   cinesdk.MediaTypeMovie,
		MediaID:     "603",
		MediaTitle:  "The Matrix",
		MediaPoster: "/poster/603.jpg",
		MediaRate:   floatPtr(8.7),
	})
	require.NoError(t, err)
	require.NotEmpty(t, matrix.ID)

	breakingBad, err := client.AddFavorite(ctx, cinesdk.AddFavoriteRequest{
		MediaType:   cinesdk.MediaTypeTV,
		MediaID:     "1396",
		MediaTitle:  "Breaking Bad",
		MediaPoster: "/poster/1396.jpg",
		MediaRate:   floatPtr(9.5),
	})
	require.NoError(t, err)

	t.Run("list returns insertion order", func(t *testing.T) {
		favorites, err := client.ListFavorites(ctx)
		require.NoError(t, err)
		require.Len(t, favorites, 2)
		require.Equal(t, matrix.ID, favorites[0].ID)
		require.Equal(t, breakingBad.ID, favorites[1].ID)
	})

	t.Run("invalid media type is a validation error", func(t *testing.T) {
		_, err := client.AddFavorite(ctx, cinesdk.AddFavoriteRequest{
			MediaType:   "podcast",
			MediaID:     "42",
			MediaTitle:  "Some Show",
			MediaPoster: "/poster/42.jpg",
			MediaRate:   floatPtr(7.0),
		})
		var valErr *cinesdk.ValidationError
		require.ErrorAs(t, err, &valErr)
		require.Contains(t, valErr.Details, "mediaType")
	})

	t.Run("remove then re-remove", func(t *testing.T) {
		require.NoError(t, client.RemoveFavorite(ctx, matrix.ID))

		err := client.RemoveFavorite(ctx, matrix.ID)
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

		favorites, err := client.ListFavorites(ctx)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
	})
}

func TestFavoritesOwnership(t *testing.T) {
	ctx := context.Background()
	alice := newTestServer(t)
	signupAndSignin(t, alice, "alicewatches")

	favorite, err := alice.AddFavorite(ctx, cinesdk.AddFavoriteRequest{
		MediaType:   cinesdk.MediaTypeMovie,
		MediaID:     "603",
		MediaTitle:  "The Matrix",
		MediaPoster: "/poster/603.jpg",
		MediaRate:   floatPtr(8.7),
	})
	require.NoError(t, err)

	bob := cinesdk.NewClient(alice.BaseURL)
	signupAndSignin(t, bob, "bobwatchestoo")

	t.Run("cross-user delete is 403 and record remains", func(t *testing.T) {
		err := bob.RemoveFavorite(ctx, favorite.ID)
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusForbidden, apiErr.StatusCode)

		favorites, err := alice.ListFavorites(ctx)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
	})

	t.Run("lists are isolated per user", func(t *testing.T) {
		favorites, err := bob.ListFavorites(ctx)
		require.NoError(t, err)
		require.Empty(t, favorites)
	})
}

func TestAuthRequired(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		_, err := client.GetInfo(ctx)
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		client.SetToken("not-a-real-token")
		_, err := client.ListFavorites(ctx)
		var apiErr *cinesdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestSystemEndpoints(t *testing.T) {
	client := newTestServer(t)

	t.Run("livez", func(t *testing.T) {
		resp, err := http.Get(client.BaseURL + "/livez")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("readyz", func(t *testing.T) {
		resp, err := http.Get(client.BaseURL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("jwks serves a key", func(t *testing.T) {
		resp, err := http.Get(client.BaseURL + "/.well-known/jwks.json")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
