package services

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driven"
)

// mockBackend implements driven.SearchBackend for testing.
type mockBackend struct {
	statusFn func(ctx context.Context) (domain.StatusResponse, error)
	searchFn func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)

	searchCalls atomic.Int32
	lastRequest atomic.Value
}

var _ driven.SearchBackend = (*mockBackend)(nil)

func (m *mockBackend) Status(ctx context.Context) (domain.StatusResponse, error) {
	if m.statusFn != nil {
		return m.statusFn(ctx)
	}
	return domain.StatusResponse{Status: domain.StatusHealthy, HTTPStatus: 200}, nil
}

func (m *mockBackend) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.searchCalls.Add(1)
	m.lastRequest.Store(req)
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &domain.SearchResponse{Query: req.Query}, nil
}

func (m *mockBackend) request() domain.SearchRequest {
	req, _ := m.lastRequest.Load().(domain.SearchRequest)
	return req
}

// lakeHouseResponse is the two-item response used by the scenario tests.
func lakeHouseResponse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Query: "lake house",
		Total: 2,
		Results: []domain.ResultItem{
			{Score: 0.873, Data: map[string]any{"text": "Lake House retreat", "id": "p1"}},
			{Score: 0.5, Data: map[string]any{"text_content": "House by the lake"}},
		},
	}
}
