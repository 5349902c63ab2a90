package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
)

type skipRequest struct {
	Reason string `json:"reason"`
}

type clearResponse struct {
	Cleared int `json:"cleared"`
}

func sequenceParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "seq")
	seq, err := strconv.Atoi(raw)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("%w: invalid sequence %q", errBadRequest, raw)
	}
	return seq, nil
}

// RunEntry executes one pending plan entry now.
func RunEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seq, err := sequenceParam(r)
		if err != nil {
			writeError(w, d, err)
			return
		}
		entry, err := d.Session.RunNow(r.Context(), seq)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, entry)
	}
}

// SkipEntry skips one pending plan entry with an optional reason.
func SkipEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seq, err := sequenceParam(r)
		if err != nil {
			writeError(w, d, err)
			return
		}
		var req skipRequest
		if err := decodeOptional(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		entry, err := d.Session.Skip(r.Context(), seq, req.Reason)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, entry)
	}
}

func RunNext(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := d.Session.RunNext(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, entry)
	}
}

func SkipNext(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req skipRequest
		if err := decodeOptional(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		entry, err := d.Session.SkipNext(r.Context(), req.Reason)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, entry)
	}
}

// ClearQueue skips everything still pending.
func ClearQueue(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := d.Session.ClearPending(r.Context())
		writeJSON(w, d, http.StatusOK, clearResponse{Cleared: n})
	}
}
