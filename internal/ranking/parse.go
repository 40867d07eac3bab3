package ranking

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

// ParseOffers decodes flights_data. It accepts the search_flights result
// object, whose offers sit under "flights", or a bare array of offers.
func ParseOffers(data string) ([]models.FlightOffer, error) {
	trimmed := bytes.TrimSpace([]byte(data))
	if len(trimmed) == 0 {
		return nil, &models.ParseError{Err: errors.New("empty document")}
	}

	if trimmed[0] == '[' {
		var offers []models.FlightOffer
		if err := json.Unmarshal(trimmed, &offers); err != nil {
			return nil, &models.ParseError{Err: err}
		}
		return offers, nil
	}

	var doc struct {
		Flights json.RawMessage `json:"flights"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, &models.ParseError{Err: err}
	}

	flights := bytes.TrimSpace(doc.Flights)
	if len(flights) == 0 || bytes.Equal(flights, []byte("null")) {
		return nil, nil
	}
	if flights[0] != '[' {
		return nil, &models.ParseError{Err: errors.New(`"flights" must be an array`)}
	}

	var offers []models.FlightOffer
	if err := json.Unmarshal(flights, &offers); err != nil {
		return nil, &models.ParseError{Err: err}
	}
	return offers, nil
}
