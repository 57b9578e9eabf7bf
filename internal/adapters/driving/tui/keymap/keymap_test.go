package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Help.Keys(), "?")
	assert.Contains(t, km.Back.Keys(), "esc")
	assert.Contains(t, km.Search.Keys(), "enter")
	assert.Contains(t, km.Limit.Keys(), "tab")
	assert.Contains(t, km.NewSearch.Keys(), "n")
	assert.Contains(t, km.Settings.Keys(), "s")
	assert.Len(t, km.Samples, MaxSamples)
}

func TestKeyMap_SampleIndex(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, 0, km.SampleIndex("alt+1"))
	assert.Equal(t, 8, km.SampleIndex("alt+9"))
	assert.Equal(t, -1, km.SampleIndex("1"))
	assert.Equal(t, -1, km.SampleIndex("alt+0"))
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
	assert.NotEmpty(t, km.ResultsHelp())
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	b := key.NewBinding(key.WithKeys("up", "k"))

	assert.True(t, Matches("k", b))
	assert.True(t, Matches("up", b))
	assert.False(t, Matches("j", b))
}
