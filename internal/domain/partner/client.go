package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesops/backend/internal/domain/shared"
)

// Client is a customer of the sales operation. DistributorCode is the short
// numeric identifier issued by the distributor; it is the join key between
// the distributor's statements and our ledger.
type Client struct {
	shared.BaseEntity
	DistributorCode string
	Name            string
	TradeName       string
	City            string
	State           string
	Active          bool
}

// ClientFilter holds optional filters for client listings
type ClientFilter struct {
	Search     string
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// ClientRepository defines read access to clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	// FindByDistributorCode resolves a client from the code printed on a
	// distributor statement. Returns shared.ErrNotFound when no client
	// carries the code.
	FindByDistributorCode(ctx context.Context, code string) (*Client, error)
	FindAll(ctx context.Context, filter ClientFilter) ([]Client, int64, error)
}
