package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// SubjectFromContext returns the verified user id bound by AuthnMiddleware.
// This binding is the only source of truth for "who is making this
// request"; handlers must never trust identifiers from the request body.
func SubjectFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(CtxKeyUserID).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
