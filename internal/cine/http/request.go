package http

import (
	"encoding/json"
	"net/http"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
)

// maxBodyBytes caps request bodies; every payload this API accepts is tiny.
const maxBodyBytes = 64 << 10

// decodeRequest parses a JSON body into v. On failure it writes the 400
// response and returns false.
func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		cinesdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

// subject extracts the authenticated user id bound by the authn
// middleware. A missing subject on a secured route means the middleware
// chain is misconfigured; answer 401 rather than guess.
func subject(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := httpx.SubjectFromContext(r.Context())
	if !ok || userID == "" {
		cinesdk.ErrUnauthorized.WriteError(w)
		return "", false
	}
	return userID, true
}
