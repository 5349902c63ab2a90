package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

// ExportSettings returns profiles and global commands.
func ExportSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, http.StatusOK, d.Catalog.Export())
	}
}

// ImportSettings replaces profiles and global commands and saves them.
// The audit log and an open plan are kept; the next login uses the new settings.
func ImportSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var exp domain.Export
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
		if err := dec.Decode(&exp); err != nil {
			writeError(w, d, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}

		if err := d.Persister.Import(r.Context(), exp); err != nil {
			writeError(w, d, err)
			return
		}

		profiles, globals := d.Catalog.Counts()
		d.Logger.Info("settings imported",
			logger.Int("profiles", profiles),
			logger.Int("global_commands", globals))
		writeJSON(w, d, http.StatusOK, d.Catalog.Export())
	}
}
