package handlers

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/fintrack/internal/middleware"
	"github.com/crucial707/fintrack/internal/response"
)

// Banner answers GET /. Identified callers are greeted by username.
func Banner(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"service": "fintrack", "status": "running"}
	if user, ok := middleware.UserFrom(r.Context()); ok {
		data["user"] = user.Username
	}
	response.OK(w, http.StatusOK, data, "Finance tracker API is running")
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// Ready reports whether the database answers a ping.
func Ready(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.Fail(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.OK(w, http.StatusOK, map[string]string{"status": "ready"}, "")
	}
}
