package driven

import (
	"context"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

// SearchBackend is the remote vector-search service.
// Implementations perform exactly one request per call: no retries, no caching.
type SearchBackend interface {
	// Status issues the status probe.
	// A reply with a decodable JSON body is returned with its HTTP code set,
	// whatever that code is. Transport and decode failures return *domain.TransportError.
	Status(ctx context.Context) (domain.StatusResponse, error)

	// Search issues the query-and-rank request.
	// Non-2xx replies return *domain.ApplicationError; transport and decode
	// failures return *domain.TransportError.
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
}
