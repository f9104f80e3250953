// Package cinesdk holds the wire types for the cine API plus a small HTTP
// client. The server handlers and the Go client share these definitions so
// the two cannot drift apart.
package cinesdk

// SignupRequest registers a new account.
type SignupRequest struct {
	// Username is the unique login name (min 8 chars).
	Username string `json:"username"`

	// Password is the plaintext password (min 8 chars, never stored).
	Password string `json:"password"`

	// ConfirmPassword must equal Password.
	ConfirmPassword string `json:"confirmPassword"`

	// DisplayName is the public name shown in the UI (min 8 chars).
	DisplayName string `json:"displayName"`
}

// SigninRequest authenticates an existing account.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdatePasswordRequest changes the password of the authenticated user.
// The subject comes from the verified token, never from the body.
type UpdatePasswordRequest struct {
	// Password is the current password, re-verified before the change.
	Password string `json:"password"`

	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// AddFavoriteRequest bookmarks a catalog title for the authenticated user.
type AddFavoriteRequest struct {
	// MediaType is one of "movie" or "tv".
	MediaType string `json:"mediaType"`

	// MediaID is the external catalog key. Opaque to this service.
	MediaID string `json:"mediaId"`

	MediaTitle  string `json:"mediaTitle"`
	MediaPoster string `json:"mediaPoster"`

	// MediaRate is a pointer so "field missing" is distinguishable from a
	// zero rating.
	MediaRate *float64 `json:"mediaRate"`
}

// UserResponse is the public profile of an account. It deliberately has no
// password-hash field.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// SigninResponse carries the profile plus a freshly minted session token.
type SigninResponse struct {
	User UserResponse `json:"user"`

	// AccessToken is the signed session token to present as
	// "Authorization: Bearer {token}" on protected requests.
	AccessToken string `json:"accessToken"`

	// TokenType is always "Bearer".
	TokenType string `json:"tokenType"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`
}

// FavoriteResponse is a single favorite record owned by the caller.
type FavoriteResponse struct {
	ID          string  `json:"id"`
	MediaType   string  `json:"mediaType"`
	MediaID     string  `json:"mediaId"`
	MediaTitle  string  `json:"mediaTitle"`
	MediaPoster string  `json:"mediaPoster"`
	MediaRate   float64 `json:"mediaRate"`
	CreatedAt   string  `json:"createdAt"` // RFC3339
}

// ListFavoritesResponse is the caller's favorites in insertion order.
type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// StatusResponse acknowledges an operation with no payload.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthChecks reports the state of each critical dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
