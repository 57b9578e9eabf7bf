package mcp

import (
	"context"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/core/services"
)

// mockBackend is a mock implementation of driven.SearchBackend.
type mockBackend struct {
	status    domain.StatusResponse
	statusErr error
	resp      *domain.SearchResponse
	err       error
	last      domain.SearchRequest
	calls     int
}

func (m *mockBackend) Status(_ context.Context) (domain.StatusResponse, error) {
	return m.status, m.statusErr
}

func (m *mockBackend) Search(_ context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	if m.resp == nil {
		return &domain.SearchResponse{Query: req.Query}, nil
	}
	return m.resp, nil
}

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Save(_ *domain.AppSettings) error { return m.err }
func (m *mockSettings) Set(_, _ string) error           { return m.err }
func (m *mockSettings) Validate() error                 { return m.err }
func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *mockSettings) Keys() []string                  { return nil }

func testPorts(backend *mockBackend) *Ports {
	return &Ports{
		NewController: func(r driving.ResultRenderer) driving.SearchController {
			return services.NewSearchController(backend, r)
		},
		Health: services.NewHealthMonitor(backend),
	}
}

func lakeHouse() *domain.SearchResponse {
	return &domain.SearchResponse{
		Query: "lake house",
		Total: 2,
		Results: []domain.ResultItem{
			{Score: 0.873, Data: map[string]any{"text": "Lake House retreat", "id": "p1"}},
			{Score: 0.5, Data: map[string]any{"text_content": "House by the lake"}},
		},
	}
}
