package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NotLoggedIn is the active-character display while no session is open.
const NotLoggedIn = "Not logged in"

// CharacterInfo is the opaque identity of the logged-in character.
type CharacterInfo struct {
	Name      string `json:"name"`
	WorldID   uint16 `json:"world_id"`
	WorldName string `json:"world_name"`
}

// WorldDisplay returns the world name, or "World {id}" when the name is blank.
func (c CharacterInfo) WorldDisplay() string {
	if strings.TrimSpace(c.WorldName) == "" {
		return fmt.Sprintf("World %d", c.WorldID)
	}
	return c.WorldName
}

// Key is the character key stamped on plan and log entries ("Name@World").
func (c CharacterInfo) Key() string {
	return c.Name + "@" + c.WorldDisplay()
}

// Display is the human-readable active character ("Name @ World").
func (c CharacterInfo) Display() string {
	return c.Name + " @ " + c.WorldName
}

// Profile bundles commands for one character on one world.
type Profile struct {
	ID            uuid.UUID      `json:"id" yaml:"id"`
	Label         string         `json:"label" yaml:"label"`
	CharacterName string         `json:"character_name" yaml:"character_name"`
	WorldID       uint16         `json:"world_id" yaml:"world_id"`
	WorldName     string         `json:"world_name" yaml:"world_name"`
	Enabled       bool           `json:"enabled" yaml:"enabled"`
	Commands      []CommandEntry `json:"commands" yaml:"commands"`
}

// Matches reports whether the profile applies to the given character:
// enabled, same world id, character name equal ignoring case.
func (p *Profile) Matches(info CharacterInfo) bool {
	return p.Enabled &&
		p.WorldID == info.WorldID &&
		strings.EqualFold(p.CharacterName, info.Name)
}

// FindProfile returns the first profile matching info, or nil.
// Duplicates are not an error: list order decides.
func FindProfile(profiles []Profile, info CharacterInfo) *Profile {
	for i := range profiles {
		if profiles[i].Matches(info) {
			return &profiles[i]
		}
	}
	return nil
}
