package session

import "github.com/google/uuid"

// executedSet records OncePerSession commands sent since the last logout.
type executedSet map[uuid.UUID]struct{}

func (s executedSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s executedSet) add(id uuid.UUID) { s[id] = struct{}{} }

func (s executedSet) reset() { clear(s) }
