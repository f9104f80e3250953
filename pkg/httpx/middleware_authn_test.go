package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "cine-test"})
	require.NoError(t, err)

	var gotSubject string
	handler := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := SubjectFromContext(r.Context())
			require.True(t, ok)
			gotSubject = subject
			w.WriteHeader(http.StatusNoContent)
		}),
		AuthnMiddleware(km.Verifier),
	)

	issue := func(t *testing.T, issuedAt time.Time, ttl time.Duration) string {
		t.Helper()
		claims := jwtx.NewSessionClaims("user-42", "someusername", "Some User", ttl, "cine-test", issuedAt)
		token, err := km.GetSigner().Sign(claims)
		require.NoError(t, err)
		return token
	}

	t.Run("missing token rejected before handler", func(t *testing.T) {
		gotSubject = ""
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
		require.Empty(t, gotSubject)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		gotSubject = ""
		req := httptest.NewRequest(http.MethodGet, "/info", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, gotSubject)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		gotSubject = ""
		req := httptest.NewRequest(http.MethodGet, "/info", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, time.Now().UTC().Add(-2*time.Hour), time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, gotSubject)
	})

	t.Run("valid token binds subject", func(t *testing.T) {
		gotSubject = ""
		req := httptest.NewRequest(http.MethodGet, "/info", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, time.Now().UTC(), time.Hour))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-42", gotSubject)
	})
}
