// Package auditlog keeps the bounded, append-only history of command outcomes.
package auditlog

import (
	"strings"
	"sync"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

// DefaultCapacity is the number of entries retained before the oldest are evicted.
const DefaultCapacity = 500

// Log is a FIFO of domain.LogEntry bounded by capacity. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  []domain.LogEntry
}

// New creates a log holding at most capacity entries. capacity <= 0 uses DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]domain.LogEntry, 0, capacity),
	}
}

// Capacity returns the configured bound.
func (l *Log) Capacity() int { return l.capacity }

// Append adds e and evicts the oldest entries beyond capacity.
// It returns how many entries were evicted.
func (l *Log) Append(e domain.LogEntry) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, e)
	return l.trimLocked()
}

// Replace swaps the whole history, keeping only the newest capacity entries.
func (l *Log) Replace(entries []domain.LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]domain.LogEntry, len(entries), max(len(entries), l.capacity))
	copy(l.entries, entries)
	l.trimLocked()
}

func (l *Log) trimLocked() int {
	over := len(l.entries) - l.capacity
	if over <= 0 {
		return 0
	}
	// Shift in place so the backing array does not keep growing.
	n := copy(l.entries, l.entries[over:])
	clear(l.entries[n:])
	l.entries = l.entries[:n]
	return over
}

// Entries returns a copy of the history, oldest first.
func (l *Log) Entries() []domain.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear drops the whole history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
	l.entries = l.entries[:0]
}

// Query selects log entries. Zero values match everything.
type Query struct {
	// Search matches command text or message, ignoring case.
	Search string
	// Status keeps only entries with this exact status.
	Status domain.Status
	// Limit keeps only the newest Limit matches.
	Limit int
}

// Filter returns the entries matching q, oldest first.
func (l *Log) Filter(q Query) []domain.LogEntry {
	return Filter(l.Entries(), q)
}

// Filter applies q to entries, which are expected oldest first.
func Filter(entries []domain.LogEntry, q Query) []domain.LogEntry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.LogEntry, 0, len(entries))
	for _, e := range entries {
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.CommandText), needle) &&
			!strings.Contains(strings.ToLower(e.Message), needle) {
			continue
		}
		out = append(out, e)
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[len(out)-q.Limit:]
	}
	return out
}
