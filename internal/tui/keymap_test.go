package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"PageUp", km.PageUp, []string{"pgup"}},
		{"PageDown", km.PageDown, []string{"pgdown"}},
		{"Help", km.Help, []string{"?"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.binding.Keys()
			if len(got) != len(tt.keys) {
				t.Fatalf("keys = %v, want %v", got, tt.keys)
			}
			for i := range got {
				if got[i] != tt.keys[i] {
					t.Errorf("key[%d] = %q, want %q", i, got[i], tt.keys[i])
				}
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	if n := len(km.ShortHelp()); n != 4 {
		t.Errorf("ShortHelp has %d bindings, want 4", n)
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total != 6 {
		t.Errorf("FullHelp has %d bindings, want 6", total)
	}
}

func TestKeyMapMatchesRunes(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	if !key.Matches(q, km.Quit) {
		t.Error("q should match Quit")
	}
	if key.Matches(q, km.Help) {
		t.Error("q should not match Help")
	}
}
