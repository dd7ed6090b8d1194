package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/messages"
)

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	assert.Equal(t, 0, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, v.Selected())

	// Cannot move above the first item
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())
}

func TestView_EnterSelectsView(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewChat, msg.View)
}

func TestView_QuitKeys(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 24)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)

	assert.Equal(t, "Initialising...", v.View())

	v.SetDimensions(80, 24)
	out := v.View()
	assert.Contains(t, out, "Shoptalk")
	assert.Contains(t, out, "Chat")
	assert.Contains(t, out, "Quit")
}
