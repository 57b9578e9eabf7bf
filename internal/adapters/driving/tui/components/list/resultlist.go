// Package list provides the ranked result list for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/domain"
)

// linesPerItem is the height budget of one rendered result.
const linesPerItem = 3

// ResultList displays a Rendering in a navigable list.
type ResultList struct {
	rendering *domain.Rendering
	selected  int
	styles    *styles.Styles
	width     int
	height    int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the summary line followed by the visible items.
func (r *ResultList) View() string {
	if r.IsEmpty() {
		return ""
	}

	items := r.rendering.Items
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, r.styles.Subtitle.Render(r.rendering.Summary), "")

	visible := (r.height - 2) / linesPerItem
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i, &items[i]))
	}

	return strings.Join(lines, "\n")
}

// renderItem formats one result: ordinal and score, text, optional ID.
func (r *ResultList) renderItem(index int, item *domain.RenderedItem) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	head := fmt.Sprintf("%s%d.", indicator, item.Ordinal)
	if index == r.selected {
		head = r.styles.Selected.Render(head)
	} else {
		head = r.styles.Normal.Render(head)
	}
	head += " " + r.styles.Score.Render(item.Percentage)

	textWidth := r.width - 4
	if textWidth < 20 {
		textWidth = 20
	}
	body := r.styles.Normal.Width(textWidth).PaddingLeft(4).Render(item.Highlighted)

	out := head + "\n" + body
	if item.HasID {
		out += "\n" + r.styles.Muted.Render("    ID: "+item.ID)
	}
	return out
}

// SetRendering replaces the list content and resets the selection.
func (r *ResultList) SetRendering(rendering *domain.Rendering) {
	r.rendering = rendering
	r.selected = 0
}

// Rendering returns the current content.
func (r *ResultList) Rendering() *domain.Rendering {
	return r.rendering
}

// Selected returns the index of the selected item.
func (r *ResultList) Selected() int {
	return r.selected
}

// SelectedItem returns the currently selected item, or nil if none.
func (r *ResultList) SelectedItem() *domain.RenderedItem {
	if r.IsEmpty() || r.selected < 0 || r.selected >= r.Count() {
		return nil
	}
	return &r.rendering.Items[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < r.Count()-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of items.
func (r *ResultList) Count() int {
	if r.rendering == nil {
		return 0
	}
	return len(r.rendering.Items)
}

// IsEmpty returns whether the list has nothing to show.
func (r *ResultList) IsEmpty() bool {
	return r.Count() == 0
}
