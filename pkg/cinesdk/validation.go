package cinesdk

import "strings"

// Media types accepted by the favorites endpoints.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// minFieldLength applies to username, password and displayName alike.
const minFieldLength = 8

// Validate checks the signup request shape. Returns a map of field name to
// message for every violated rule; an empty map means the request is valid.
func (r SignupRequest) Validate() map[string]string {
	details := map[string]string{}

	validateMinLength(details, "username", r.Username)
	validateMinLength(details, "password", r.Password)
	validateMinLength(details, "displayName", r.DisplayName)

	if len(r.ConfirmPassword) < minFieldLength {
		details["confirmPassword"] = "confirmPassword must be at least 8 characters"
	} else if r.ConfirmPassword != r.Password {
		details["confirmPassword"] = "confirmPassword does not match password"
	}

	return details
}

// Validate checks the signin request shape. The same length floor applies
// as at signup, so undersized probes are rejected before any lookup or
// hashing work.
func (r SigninRequest) Validate() map[string]string {
	details := map[string]string{}

	validateMinLength(details, "username", r.Username)
	validateMinLength(details, "password", r.Password)

	return details
}

// Validate checks the update-password request shape.
func (r UpdatePasswordRequest) Validate() map[string]string {
	details := map[string]string{}

	validateMinLength(details, "password", r.Password)
	validateMinLength(details, "newPassword", r.NewPassword)

	if len(r.ConfirmNewPassword) < minFieldLength {
		details["confirmNewPassword"] = "confirmNewPassword must be at least 8 characters"
	} else if r.ConfirmNewPassword != r.NewPassword {
		details["confirmNewPassword"] = "confirmNewPassword does not match newPassword"
	}

	return details
}

// Validate checks the add-favorite request shape. The media id is opaque,
// so only presence is checked.
func (r AddFavoriteRequest) Validate() map[string]string {
	details := map[string]string{}

	switch r.MediaType {
	case MediaTypeMovie, MediaTypeTV:
	case "":
		details["mediaType"] = "mediaType is required"
	default:
		details["mediaType"] = "mediaType must be one of: movie, tv"
	}

	if strings.TrimSpace(r.MediaID) == "" {
		details["mediaId"] = "mediaId is required"
	}
	if strings.TrimSpace(r.MediaTitle) == "" {
		details["mediaTitle"] = "mediaTitle is required"
	}
	if strings.TrimSpace(r.MediaPoster) == "" {
		details["mediaPoster"] = "mediaPoster is required"
	}
	if r.MediaRate == nil {
		details["mediaRate"] = "mediaRate is required"
	}

	return details
}

func validateMinLength(details map[string]string, field, value string) {
	if len(value) < minFieldLength {
		details[field] = field + " must be at least 8 characters"
	}
}
