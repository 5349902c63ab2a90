package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
	"github.com/MrSnakeDoc/logincmd/internal/httpserver/deps"
	"github.com/MrSnakeDoc/logincmd/internal/logger"
)

type characterRequest struct {
	Name      string `json:"name"`
	WorldID   uint16 `json:"world_id"`
	WorldName string `json:"world_name"`
}

func (c characterRequest) info() domain.CharacterInfo {
	return domain.CharacterInfo{Name: c.Name, WorldID: c.WorldID, WorldName: c.WorldName}
}

type loginRequest struct {
	Character *characterRequest `json:"character,omitempty"`
}

// Session returns the state machine snapshot: state, active character, plan and queue.
func Session(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, http.StatusOK, d.Session.Snapshot())
	}
}

// Login builds a plan for the current character. The body may carry the character
// inline, which is stored before the plan is built.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeOptional(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		if req.Character != nil {
			d.Identity.Set(req.Character.info())
		}

		if err := d.Session.Login(r.Context()); err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, d, http.StatusOK, d.Session.Snapshot())
	}
}

// Logout drops the plan and forgets the character.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Session.Logout()
		d.Identity.Clear()
		writeJSON(w, d, http.StatusOK, d.Session.Snapshot())
	}
}

// SetCharacter records the identity reported by the host without logging in.
func SetCharacter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req characterRequest
		if err := decodeOptional(w, r, &req); err != nil {
			writeError(w, d, err)
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, d, fmt.Errorf("%w: character name is required", errBadRequest))
			return
		}

		info := req.info()
		d.Identity.Set(info)
		d.Logger.Info("character identity set", logger.String("character", info.Key()))
		writeJSON(w, d, http.StatusOK, info)
	}
}

// ClearCharacter forgets the identity. An open session is left alone.
func ClearCharacter(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Identity.Clear()
		w.WriteHeader(http.StatusNoContent)
	}
}
