package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready      bool   `json:"ready"`
	Reason     string `json:"reason,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
}

// Readyz reports ready once settings were restored into the catalog.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		last := d.Catalog.LastReload()
		if last.IsZero() {
			writeJSON(w, d, http.StatusServiceUnavailable, readyzResponse{
				Ready:  false,
				Reason: "settings not loaded",
			})
			return
		}
		writeJSON(w, d, http.StatusOK, readyzResponse{
			Ready:      true,
			LastReload: last.UTC().Format(time.RFC3339),
		})
	}
}
