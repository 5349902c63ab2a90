// Package identity holds the character currently reported by the host.
package identity

import (
	"strings"
	"sync"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// Holder is the identity source. The host pushes the logged-in character with Set
// and drops it with Clear; the session manager reads it with Current.
type Holder struct {
	mu    sync.RWMutex
	info  domain.CharacterInfo
	ready bool
}

// NewHolder returns an empty holder (identity not ready).
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the character and whether one is known.
func (h *Holder) Current() (domain.CharacterInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.info, h.ready
}

// Set records info as the current character. A blank name leaves the holder not ready.
func (h *Holder) Set(info domain.CharacterInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	info.Name = strings.TrimSpace(info.Name)
	h.info = info
	h.ready = info.Name != ""
}

// Clear forgets the current character.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.info = domain.CharacterInfo{}
	h.ready = false
}
