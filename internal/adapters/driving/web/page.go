package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageData is everything the page template reads.
type pageData struct {
	Query        string
	Limit        int
	LimitOptions []int
	Samples      []string
	Health       badge
	State        domain.ViewState
}

// badge is the status indicator as rendered.
type badge struct {
	Label string
	Class string
}

func newBadge(ind domain.HealthIndicator) badge {
	class := "unknown"
	switch ind.Level {
	case domain.HealthConnected:
		class = "connected"
	case domain.HealthConnectionError:
		class = "connection-error"
	case domain.HealthOffline:
		class = "offline"
	case domain.HealthUnknown:
	}
	return badge{Label: ind.Label, Class: class}
}

func parsePage() (*template.Template, error) {
	funcs := template.FuncMap{
		// Highlighted text is escaped before marking.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) }, //nolint:gosec // escaped by HighlightHTML
	}
	return template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")
}

func renderPage(w io.Writer, tmpl *template.Template, data pageData) error {
	return tmpl.Execute(w, data)
}
