package catalog

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

func TestReplaceAndCommands(t *testing.T) {
	c := New()

	globals, profiles := c.Commands()
	if len(globals) != 0 || len(profiles) != 0 {
		t.Fatalf("new catalog should be empty, got %d/%d", len(globals), len(profiles))
	}
	if !c.LastReload().IsZero() {
		t.Error("LastReload() should be zero before Replace")
	}

	p := domain.Profile{
		ID:            uuid.New(),
		CharacterName: "Alys Rowe",
		WorldID:       73,
		Enabled:       true,
		Commands:      []domain.CommandEntry{domain.NewCommandEntry("gear", "/gearset change 1", 0)},
	}
	in := []domain.CommandEntry{domain.NewCommandEntry("wave", "/wave", 0)}
	c.Replace([]domain.Profile{p}, in)

	// Callers' slices are copied on the way in and on the way out.
	in[0].CommandText = "/mutated"
	globals, profiles = c.Commands()
	if globals[0].CommandText != "/wave" {
		t.Errorf("globals[0] = %q, want /wave", globals[0].CommandText)
	}
	profiles[0].Commands[0].CommandText = "/mutated"
	if _, got := c.Commands(); got[0].Commands[0].CommandText != "/gearset change 1" {
		t.Errorf("profile command leaked mutation: %q", got[0].Commands[0].CommandText)
	}

	if np, ng := c.Counts(); np != 1 || ng != 1 {
		t.Errorf("Counts() = %d, %d", np, ng)
	}
	if c.LastReload().IsZero() {
		t.Error("LastReload() not updated")
	}

	exp := c.Export()
	if len(exp.Profiles) != 1 || len(exp.GlobalCommands) != 1 {
		t.Errorf("Export() = %+v", exp)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Replace(nil, []domain.CommandEntry{domain.NewCommandEntry("a", "/a", 0)})
		}()
		go func() {
			defer wg.Done()
			_, _ = c.Commands()
			_, _ = c.Counts()
		}()
	}
	wg.Wait()

	if _, ng := c.Counts(); ng != 1 {
		t.Errorf("globals = %d, want 1", ng)
	}
}
