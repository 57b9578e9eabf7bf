package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
)

// Ensure ResultRenderer implements the interface.
var _ driving.ResultRenderer = (*ResultRenderer)(nil)

// ResultRenderer produces the ranked, highlighted presentation of a response.
type ResultRenderer struct {
	highlight func(text, query string) string
}

// NewResultRenderer creates a renderer that highlights with mark.
// A nil mark leaves text unmarked.
func NewResultRenderer(mark Marker) *ResultRenderer {
	return &ResultRenderer{
		highlight: func(text, query string) string {
			return Highlight(text, query, mark)
		},
	}
}

// NewHTMLRenderer creates a renderer whose Highlighted text is escaped HTML
// with matches wrapped in highlight spans.
func NewHTMLRenderer() *ResultRenderer {
	return &ResultRenderer{highlight: HighlightHTML}
}

// Render returns nil for a response with no results.
func (r *ResultRenderer) Render(resp *domain.SearchResponse) *domain.Rendering {
	if resp.IsEmpty() {
		return nil
	}

	items := make([]domain.RenderedItem, len(resp.Results))
	for i, res := range resp.Results {
		text := res.DisplayText()
		id, hasID := res.ID()
		items[i] = domain.RenderedItem{
			Ordinal:     i + 1,
			Score:       res.Score,
			Percentage:  FormatPercentage(res.Score),
			Text:        text,
			Highlighted: r.highlight(text, resp.Query),
			ID:          id,
			HasID:       hasID,
		}
	}

	return &domain.Rendering{
		Summary: Summary(resp),
		Items:   items,
	}
}

// Summary reads `{total} results for "{query}"` using the response's own fields.
func Summary(resp *domain.SearchResponse) string {
	return fmt.Sprintf("%d results for \"%s\"", resp.Total, resp.Query)
}

// FormatPercentage renders a similarity score as a percentage with one decimal.
func FormatPercentage(score float64) string {
	return strconv.FormatFloat(score*100, 'f', 1, 64) + "%"
}
