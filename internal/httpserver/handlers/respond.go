package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
	"github.com/MrSnakeDoc/logincmd/internal/session"
	"github.com/MrSnakeDoc/logincmd/internal/store"
)

// errBadRequest marks malformed input (bad JSON, bad path parameter, bad query).
var errBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, d deps.Deps, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, d deps.Deps, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		d.Logger.Error("request failed", logger.Error(err))
	}
	writeJSON(w, d, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, store.ErrInvalidImport):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrIdentityNotReady),
		errors.Is(err, session.ErrNotPending),
		errors.Is(err, session.ErrQueueEmpty):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// decodeOptional decodes a JSON body into v. An empty body leaves v untouched.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return nil
}
