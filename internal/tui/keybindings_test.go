package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

var (
	_ help.KeyMap = KeyMap{}
	_ help.KeyMap = confirmHelp{}
	_ help.KeyMap = composeHelp{}
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"down j", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, km.Down},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"up k", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, km.Up},
		{"like", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, km.Like},
		{"refresh", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, km.Refresh},
		{"delete", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Delete},
		{"comment", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")}, km.Comment},
		{"confirm", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, km.Confirm},
		{"cancel n", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, km.Cancel},
		{"cancel esc", tea.KeyMsg{Type: tea.KeyEsc}, km.Cancel},
		{"submit", tea.KeyMsg{Type: tea.KeyEnter}, km.Submit},
		{"back", tea.KeyMsg{Type: tea.KeyEsc}, km.Back},
		{"dismiss", tea.KeyMsg{Type: tea.KeyEsc}, km.DismissToast},
		{"clear", tea.KeyMsg{Type: tea.KeyCtrlX}, km.ClearToasts},
		{"quit", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"quit ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestKeyMap_FullHelpCoversAllBindings(t *testing.T) {
	km := DefaultKeyMap()

	count := 0
	for _, col := range km.FullHelp() {
		count += len(col)
	}
	assert.Equal(t, 10, count)
}
