// Package partner contains application services for the client directory.
package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesops/backend/internal/domain/partner"
)

// ClientService handles client directory read operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
	}
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, id uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByCode retrieves a client by its distributor code
func (s *ClientService) GetByCode(ctx context.Context, code string) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByDistributorCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, filter ClientListFilter) ([]ClientResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := partner.ClientFilter{
		Search:     filter.Search,
		City:       filter.City,
		ActiveOnly: filter.ActiveOnly,
		Limit:      filter.PageSize,
		Offset:     (filter.Page - 1) * filter.PageSize,
	}

	clients, total, err := s.clientRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses, total, nil
}
