package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

func sampleRendering() *domain.Rendering {
	return &domain.Rendering{
		Summary: `2 results for "lake house"`,
		Items: []domain.RenderedItem{
			{Ordinal: 1, Percentage: "87.3%", Text: "Lake House retreat", Highlighted: "Lake House retreat", ID: "p1", HasID: true},
			{Ordinal: 2, Percentage: "50.0%", Text: "House by the lake", Highlighted: "House by the lake"},
		},
	}
}

func TestNewResultList_Empty(t *testing.T) {
	r := NewResultList(nil)

	require.NotNil(t, r)
	assert.True(t, r.IsEmpty())
	assert.Equal(t, "", r.View())
	assert.Nil(t, r.SelectedItem())
}

func TestResultList_View(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(80, 20)
	r.SetRendering(sampleRendering())

	view := r.View()

	assert.Contains(t, view, `2 results for "lake house"`)
	assert.Contains(t, view, "87.3%")
	assert.Contains(t, view, "50.0%")
	assert.Contains(t, view, "ID: p1")
	assert.Contains(t, view, "House by the lake")
	assert.Equal(t, 1, strings.Count(view, "ID:"))
}

func TestResultList_Navigation(t *testing.T) {
	r := NewResultList(nil)
	r.SetRendering(sampleRendering())

	r.MoveUp()
	assert.Equal(t, 0, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, r.Selected())

	r, _ = r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, r.Selected())
	assert.Equal(t, "p1", r.SelectedItem().ID)
}

func TestResultList_SetRenderingResetsSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetRendering(sampleRendering())
	r.MoveDown()

	r.SetRendering(sampleRendering())

	assert.Equal(t, 0, r.Selected())
}

func TestResultList_ScrollsToSelection(t *testing.T) {
	r := NewResultList(nil)
	r.SetDimensions(80, 5)
	r.SetRendering(sampleRendering())
	r.MoveDown()

	view := r.View()

	assert.Contains(t, view, "50.0%")
	assert.NotContains(t, view, "87.3%")
}
