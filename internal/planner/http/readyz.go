package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/tripplan/internal/planner/store"
	"github.com/aussiebroadwan/tripplan/pkg/httpx"
	"github.com/aussiebroadwan/tripplan/pkg/jwtx"
	"github.com/aussiebroadwan/tripplan/pkg/plannersdk"
	"github.com/aussiebroadwan/tripplan/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe covering the database and the session signing key
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	plannersdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	plannersdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &plannersdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			slogx.FromContext(r.Context()).Warn("readiness: database ping failed", "error", err)
			checks.Database = "error"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, plannersdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

// DatabaseHealthHandler godoc
//
//	@Summary		Database health
//	@Description	Reports whether the database answers a ping. Always 200.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	plannersdk.DatabaseHealthResponse	"status, database"
//	@Router			/api/health [get].
func DatabaseHealthHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		db := "connected"
		if err := st.Ping(r.Context()); err != nil {
			db = "disconnected"
		}
		httpx.WriteJSON(w, http.StatusOK, plannersdk.DatabaseHealthResponse{Status: "ok", Database: db})
	}
}
