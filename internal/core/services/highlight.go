package services

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf16"
)

// minTermLength is the shortest term that gets highlighted. Shorter
// terms are dropped to avoid noise on words like "a" or "in".
const minTermLength = 3

// Marker wraps one matched substring.
type Marker func(match string) string

// Private-use runes stand in for the highlight span while matching runs on
// raw text, so terms never match inside escaped entities or span markup.
const (
	openMark  = "\uE000"
	closeMark = "\uE001"

	spanOpen  = `<span class="highlight">`
	spanClose = `</span>`
)

var (
	stripMarks = strings.NewReplacer(openMark, "", closeMark, "")
	spanMarks  = strings.NewReplacer(openMark, spanOpen, closeMark, spanClose)
)

func sentinelMarker(match string) string {
	return openMark + match + closeMark
}

// HTMLMarker wraps matches in the highlight span used by the web page.
func HTMLMarker(match string) string {
	return spanOpen + match + spanClose
}

// HighlightTerms splits a query into the terms that get highlighted:
// lowercased, whitespace separated, in query order. Length is measured in
// UTF-16 code units, the way browsers count it, so a pair of emoji is long
// enough while "ab" is not.
func HighlightTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf16Len(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

// Highlight wraps every case-insensitive occurrence of each query term in
// text with mark, preserving the text's casing. Terms are applied one pass
// at a time in query order; a later pass may re-wrap text an earlier pass
// already marked. Terms are matched literally.
func Highlight(text, query string, mark Marker) string {
	if text == "" || query == "" || mark == nil {
		return text
	}
	return applyTerms(text, HighlightTerms(query), mark)
}

// HighlightHTML highlights the raw text, then escapes it for HTML and
// swaps in the highlight span. Only characters present in text can match.
// Sentinel runes already in text are dropped.
func HighlightHTML(text, query string) string {
	text = stripMarks.Replace(text)
	if query == "" {
		return html.EscapeString(text)
	}
	marked := applyTerms(text, HighlightTerms(query), sentinelMarker)
	return spanMarks.Replace(html.EscapeString(marked))
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func applyTerms(text string, terms []string, mark Marker) string {
	out := text
	for _, term := range terms {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
		out = re.ReplaceAllStringFunc(out, mark)
	}
	return out
}
