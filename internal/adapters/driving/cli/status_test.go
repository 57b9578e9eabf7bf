package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

func TestStatusCmd(t *testing.T) {
	count := 42

	tests := []struct {
		name    string
		backend *mockBackend
		want    []string
		wantErr bool
	}{
		{
			name: "healthy",
			backend: &mockBackend{status: domain.StatusResponse{
				Status: domain.StatusHealthy, DocumentCount: &count, Collection: "properties", HTTPStatus: 200,
			}},
			want: []string{
				"Backend:    http://backend.test",
				"Status:     Connected (42 documents)",
				"Collection: properties",
			},
		},
		{
			name:    "unhealthy",
			backend: &mockBackend{status: domain.StatusResponse{Status: "degraded", HTTPStatus: 200}},
			want:    []string{"Status:     Connection Error"},
			wantErr: true,
		},
		{
			name:    "offline",
			backend: &mockBackend{statusErr: &domain.TransportError{Op: "status", Err: errors.New("refused")}},
			want:    []string{"Status:     Offline"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cleanup := setupTestServices(t, tt.backend)
			defer cleanup()

			out, err := execute("status")

			for _, line := range tt.want {
				assert.Contains(t, out, line)
			}
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrBackendUnavailable)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestStatusCmd_NotConfigured(t *testing.T) {
	defer resetState()

	_, err := execute("status")

	require.ErrorIs(t, err, errNotConfigured)
}
