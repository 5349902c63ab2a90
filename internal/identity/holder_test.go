package identity

import (
	"testing"

	"github.com/MrSnakeDoc/logincmd/internal/domain"
)

func TestHolder(t *testing.T) {
	h := NewHolder()
	if _, ok := h.Current(); ok {
		t.Fatal("new holder should not be ready")
	}

	h.Set(domain.CharacterInfo{Name: "  Alys Rowe ", WorldID: 73, WorldName: "Adamantoise"})
	info, ok := h.Current()
	if !ok {
		t.Fatal("Current() not ready after Set")
	}
	if info.Name != "Alys Rowe" {
		t.Errorf("Name = %q, want trimmed", info.Name)
	}

	h.Set(domain.CharacterInfo{Name: "   ", WorldID: 73})
	if _, ok := h.Current(); ok {
		t.Error("blank name should leave holder not ready")
	}

	h.Set(domain.CharacterInfo{Name: "Alys Rowe", WorldID: 73})
	h.Clear()
	if info, ok := h.Current(); ok || info.Name != "" {
		t.Errorf("Current() after Clear() = %+v, %v", info, ok)
	}
}
