package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/services"
	"github.com/custodia-labs/seekr/internal/logger"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"natural-language description of what to find"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Summary string               `json:"summary,omitempty"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single ranked result.
type SearchResultOutput struct {
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	Percentage string  `json:"percentage"`
	Text       string  `json:"text"`
	ID         string  `json:"id,omitempty"`
}

// StatusInput is the (empty) input schema for the status tool.
type StatusInput struct{}

// StatusOutput is the output schema for the status tool.
type StatusOutput struct {
	Label         string `json:"label"`
	Level         string `json:"level"`
	Connected     bool   `json:"connected"`
	DocumentCount *int   `json:"document_count,omitempty"`
	Collection    string `json:"collection,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Semantic search over the vector index; results are ranked by similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Check whether the search backend is reachable and healthy",
	}, s.handleStatus)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = s.defaultLimit()
	}

	logger.Debug("MCP search: %q limit=%d", input.Query, limit)

	ctrl := s.ports.NewController(services.NewResultRenderer(nil))
	state, err := ctrl.HandleSearch(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{Results: []SearchResultOutput{}}
	if state.Rendering != nil {
		output.Summary = state.Rendering.Summary
		for _, item := range state.Rendering.Items {
			output.Results = append(output.Results, SearchResultOutput{
				Rank:       item.Ordinal,
				Score:      item.Score,
				Percentage: item.Percentage,
				Text:       item.Text,
				ID:         item.ID,
			})
		}
	}
	output.Count = len(output.Results)

	return nil, output, nil
}

// handleStatus handles the status tool invocation.
func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	ind := s.ports.Health.CheckStatus(ctx)
	return nil, StatusOutput{
		Label:         ind.Label,
		Level:         ind.Level.String(),
		Connected:     ind.Level.Positive(),
		DocumentCount: ind.DocumentCount,
		Collection:    ind.Collection,
	}, nil
}

func (s *Server) defaultLimit() int {
	if s.ports.Settings != nil {
		if settings, err := s.ports.Settings.Get(); err == nil {
			return settings.Search.DefaultLimit
		}
	}
	return domain.DefaultAppSettings().Search.DefaultLimit
}
