package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/services"
)

const (
	// uriScheme is the custom URI scheme for seekr resources.
	uriScheme = "seekr://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource listing the configured sample queries.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "samples",
		Name:        "samples",
		Description: "Sample queries offered next to the search form",
		MIMEType:    "application/json",
	}, s.handleSamplesResource)

	// Template for plain-text search results.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-results",
		Description: "Ranked results for a URL-encoded query, as plain text",
		MIMEType:    "text/plain",
	}, s.handleSearchResource)
}

// handleSamplesResource returns the sample query labels.
func (s *Server) handleSamplesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	samples := domain.DefaultAppSettings().Search.SampleQueries
	if s.ports.Settings != nil {
		settings, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		samples = settings.Search.SampleQueries
	}
	if samples == nil {
		samples = []string{}
	}

	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling samples: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSearchResource runs a search and formats it like the CLI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query := extractQuery(req.Params.URI)
	if query == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	ctrl := s.ports.NewController(services.NewResultRenderer(nil))
	state, err := ctrl.HandleSearch(ctx, query, s.defaultLimit())
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     formatState(state),
		}},
	}, nil
}

func formatState(state domain.ViewState) string {
	if !state.ResultsVisible() {
		return "No results found."
	}
	var b strings.Builder
	b.WriteString(state.Rendering.Summary)
	b.WriteString("\n")
	for _, item := range state.Rendering.Items {
		fmt.Fprintf(&b, "\n#%d %s match\n%s\n", item.Ordinal, item.Percentage, item.Text)
		if item.HasID {
			fmt.Fprintf(&b, "ID: %s\n", item.ID)
		}
	}
	return b.String()
}

// extractQuery extracts the query from a URI like seekr://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return query
}
