package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/slogx"
)

// AuthnMiddleware gates protected routes. Per request it walks
// missing-token → verify → bind-subject, rejecting with 401 at the first
// failing step so downstream handlers never run unauthenticated.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				// Expired and invalid tokens are rejected identically.
				writeBearerError(w, "invalid or expired token")
				log.Warn("token verification failed", "err", err)
				return
			}

			// Bind the verified identity for downstream handlers.
			ctx = contextWithAuth(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// RFC 6750-style bearer rejection, with a structured body so API clients
// get the same error shape everywhere.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"code":    "unauthorized",
		"message": desc,
	})
}
