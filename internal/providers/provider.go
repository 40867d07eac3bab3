package providers

import (
	"context"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

// Provider is the upstream flight data source. Implementations return raw
// documents; shaping them is the projector's job.
type Provider interface {
	Name() string
	SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*RawFlights, error)
	SearchAirports(ctx context.Context, query models.AirportQuery) (*RawAirports, error)
}

func NewProviderError(provider string, status int, message string, err error) *models.ProviderError {
	return &models.ProviderError{
		Provider:    provider,
		Status:      status,
		RateLimited: status == 429,
		Message:     message,
		Err:         err,
	}
}
