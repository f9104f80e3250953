package http

import (
	"net/http"
	"time"

	"github.com/OlleroRaul/proyecto-final-cine/internal/cine/store"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/cinesdk"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/httpx"
	"github.com/OlleroRaul/proyecto-final-cine/pkg/jwtx"
)

// ReadyzHandler is the readiness probe. It checks the database connection
// and the signing keys and answers 503 if either is unavailable.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &cinesdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, cinesdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
