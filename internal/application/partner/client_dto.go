package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/salesops/backend/internal/domain/partner"
)

// ClientListFilter holds filters for client listings
type ClientListFilter struct {
	Search     string
	City       string
	ActiveOnly bool
	Page       int
	PageSize   int
}

// ClientResponse is the client representation returned to the HTTP layer
type ClientResponse struct {
	ID              uuid.UUID `json:"id"`
	DistributorCode string    `json:"distributor_code"`
	Name            string    `json:"name"`
	TradeName       string    `json:"trade_name,omitempty"`
	City            string    `json:"city,omitempty"`
	State           string    `json:"state,omitempty"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response form
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:              c.ID,
		DistributorCode: c.DistributorCode,
		Name:            c.Name,
		TradeName:       c.TradeName,
		City:            c.City,
		State:           c.State,
		Active:          c.Active,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
