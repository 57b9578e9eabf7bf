package domain

// Rendering is the ranked, highlighted presentation of a non-empty response.
type Rendering struct {
	// Summary reads `{total} results for "{query}"`.
	Summary string

	Items []RenderedItem
}

// RenderedItem is one result prepared for display.
type RenderedItem struct {
	// Ordinal is the 1-based rank.
	Ordinal int

	Score float64

	// Percentage is the score as a percent with one decimal, e.g. "87.3%".
	Percentage string

	// Text is the display text before highlighting.
	Text string

	// Highlighted is Text with query terms wrapped by the renderer's marker.
	Highlighted string

	// ID is the identifier line content; valid only when HasID.
	ID    string
	HasID bool
}
