package http

import (
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
)

// JWKSHandler exposes the JSON Web Key Set for public key discovery, so
// other services can verify session tokens without sharing the private key.
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, keys.PublicJWKS())
	}
}
