package domain

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestCharacterInfoKey(t *testing.T) {
	tests := []struct {
		name     string
		info     CharacterInfo
		expected string
	}{
		{
			name:     "world name present",
			info:     CharacterInfo{Name: "Alys Rowe", WorldID: 73, WorldName: "Adamantoise"},
			expected: "Alys Rowe@Adamantoise",
		},
		{
			name:     "blank world name falls back to id",
			info:     CharacterInfo{Name: "Alys Rowe", WorldID: 73, WorldName: ""},
			expected: "Alys Rowe@World 73",
		},
		{
			name:     "whitespace world name falls back to id",
			info:     CharacterInfo{Name: "Alys Rowe", WorldID: 21, WorldName: "   "},
			expected: "Alys Rowe@World 21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Key(); got != tt.expected {
				t.Errorf("Key() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProfileMatches(t *testing.T) {
	info := CharacterInfo{Name: "Alys Rowe", WorldID: 73, WorldName: "Adamantoise"}

	tests := []struct {
		name    string
		profile Profile
		want    bool
	}{
		{
			name:    "exact match",
			profile: Profile{CharacterName: "Alys Rowe", WorldID: 73, Enabled: true},
			want:    true,
		},
		{
			name:    "case-insensitive name",
			profile: Profile{CharacterName: "ALYS rowe", WorldID: 73, Enabled: true},
			want:    true,
		},
		{
			name:    "different world",
			profile: Profile{CharacterName: "Alys Rowe", WorldID: 74, Enabled: true},
			want:    false,
		},
		{
			name:    "disabled",
			profile: Profile{CharacterName: "Alys Rowe", WorldID: 73, Enabled: false},
			want:    false,
		},
		{
			name:    "world name is not compared",
			profile: Profile{CharacterName: "Alys Rowe", WorldID: 73, WorldName: "Gilgamesh", Enabled: true},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.Matches(info); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindProfileFirstMatchWins(t *testing.T) {
	info := CharacterInfo{Name: "alys rowe", WorldID: 73}
	profiles := []Profile{
		{Label: "disabled", CharacterName: "Alys Rowe", WorldID: 73, Enabled: false},
		{Label: "first", CharacterName: "Alys Rowe", WorldID: 73, Enabled: true},
		{Label: "second", CharacterName: "ALYS ROWE", WorldID: 73, Enabled: true},
	}

	got := FindProfile(profiles, info)
	if got == nil {
		t.Fatal("FindProfile() returned nil")
	}
	if got.Label != "first" {
		t.Errorf("FindProfile() label = %q, want %q", got.Label, "first")
	}

	if FindProfile(profiles, CharacterInfo{Name: "Nobody", WorldID: 73}) != nil {
		t.Error("FindProfile() should return nil when nothing matches")
	}
}

func TestDecodeDefaults(t *testing.T) {
	tests := []struct {
		name        string
		decode      func(v any) error
		wantLabel   string
		wantEnabled bool
	}{
		{
			name: "json without enabled",
			decode: func(v any) error {
				return json.Unmarshal([]byte(`{"character_name":"Alys Rowe","world_id":73,"commands":[{"command_text":"/wave"}]}`), v)
			},
			wantLabel:   DefaultProfileLabel,
			wantEnabled: true,
		},
		{
			name: "json explicit false",
			decode: func(v any) error {
				return json.Unmarshal([]byte(`{"label":"parked","enabled":false,"commands":[{"command_text":"/wave","enabled":false}]}`), v)
			},
			wantLabel: "parked",
		},
		{
			name: "yaml without enabled",
			decode: func(v any) error {
				return yaml.Unmarshal([]byte("character_name: Alys Rowe\nworld_id: 73\ncommands:\n  - command_text: /wave\n"), v)
			},
			wantLabel:   DefaultProfileLabel,
			wantEnabled: true,
		},
		{
			name: "yaml explicit false",
			decode: func(v any) error {
				return yaml.Unmarshal([]byte("label: parked\nenabled: false\ncommands:\n  - command_text: /wave\n    enabled: false\n"), v)
			},
			wantLabel: "parked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Profile
			if err := tt.decode(&p); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if p.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", p.Label, tt.wantLabel)
			}
			if p.Enabled != tt.wantEnabled {
				t.Errorf("profile Enabled = %v, want %v", p.Enabled, tt.wantEnabled)
			}
			if len(p.Commands) != 1 || p.Commands[0].Enabled != tt.wantEnabled {
				t.Errorf("command Enabled mismatch: %+v", p.Commands)
			}
		})
	}
}
