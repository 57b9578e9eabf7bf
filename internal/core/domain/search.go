package domain

import (
	"strconv"
	"strings"
)

// NoDescription is shown when a result carries neither text field.
const NoDescription = "No description available"

// SearchRequest is the body sent to the query-and-rank endpoint.
type SearchRequest struct {
	// Query is the trimmed, non-empty search string.
	Query string `json:"query"`

	// Limit is the maximum number of results requested.
	// The backend is trusted to clamp it.
	Limit int `json:"limit"`
}

// NormaliseQuery trims the submitted query and rejects empty input.
func NormaliseQuery(submitted string) (string, error) {
	query := strings.TrimSpace(submitted)
	if query == "" {
		return "", &ValidationError{Err: ErrEmptyQuery}
	}
	return query, nil
}

// SearchResponse is a successful reply from the query-and-rank endpoint.
type SearchResponse struct {
	Query   string       `json:"query"`
	Total   int          `json:"total"`
	Results []ResultItem `json:"results"`
}

// IsEmpty reports whether the response carries no results.
func (r *SearchResponse) IsEmpty() bool {
	return r == nil || len(r.Results) == 0
}

// ResultItem is one ranked hit. Data is an opaque record from the backend;
// only text, text_content and id are interpreted.
type ResultItem struct {
	// Score is the similarity value in [0,1].
	Score float64 `json:"score"`

	// Data is the payload stored alongside the vector.
	Data map[string]any `json:"data"`
}

// Text returns data.text, else data.text_content, else "".
// Non-string and empty values are skipped.
func (r ResultItem) Text() string {
	if s := r.stringField("text"); s != "" {
		return s
	}
	return r.stringField("text_content")
}

// DisplayText returns Text or the NoDescription fallback.
func (r ResultItem) DisplayText() string {
	if s := r.Text(); s != "" {
		return s
	}
	return NoDescription
}

// ID returns data.id as a string and whether an identifier line is shown.
// Zero numbers, false and empty strings count as absent.
func (r ResultItem) ID() (string, bool) {
	v, ok := r.Data["id"]
	if !ok || v == nil {
		return "", false
	}
	switch id := v.(type) {
	case string:
		return id, id != ""
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), id != 0
	case int:
		return strconv.Itoa(id), id != 0
	case int64:
		return strconv.FormatInt(id, 10), id != 0
	case bool:
		if !id {
			return "", false
		}
		return "true", true
	default:
		return "", false
	}
}

func (r ResultItem) stringField(key string) string {
	v, ok := r.Data[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
