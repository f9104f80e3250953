package domain

import "time"

// MediaType distinguishes the two catalog namespaces. Media ids are only
// unique within one of them.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether mt is a known media type.
func (mt MediaType) Valid() bool {
	return mt == MediaTypeMovie || mt == MediaTypeTV
}

type Favorite struct {
	ID          string
	UserID      string // owner, foreign key to users table
	MediaType   MediaType
	MediaID     string // external catalog key, opaque
	MediaTitle  string
	MediaPoster string
	MediaRate   float64
	CreatedAt   time.Time
}
