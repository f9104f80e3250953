package http

import (
	"net/http"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
)

// LivezHandler is the liveness probe. Always 200 while the process runs.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, cinesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
