package models

import (
	"regexp"
	"strings"
)

const (
	DefaultCurrency    = "BRL"
	DefaultLanguage    = "pt-BR"
	DefaultAdults      = 1
	DefaultTravelClass = "1"
	DefaultCriterion   = "price"

	MaxAdults   = 9
	MaxChildren = 8
	MaxInfants  = 8
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// SearchFlightsRequest carries search_flights arguments as received. Nil
// pointers mark fields the caller left out.
type SearchFlightsRequest struct {
	DepartureID  string   `json:"departure_id"`
	ArrivalID    string   `json:"arrival_id"`
	OutboundDate string   `json:"outbound_date"`
	ReturnDate   *string  `json:"return_date,omitempty"`
	Currency     *string  `json:"currency,omitempty"`
	Language     *string  `json:"language,omitempty"`
	Adults       *int     `json:"adults,omitempty"`
	Children     *int     `json:"children,omitempty"`
	Infants      *int     `json:"infants,omitempty"`
	TravelClass  *string  `json:"travel_class,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Stops        *string  `json:"stops,omitempty"`
}

type SearchCriteria struct {
	DepartureID  string   `json:"departure_id"`
	ArrivalID    string   `json:"arrival_id"`
	OutboundDate string   `json:"outbound_date"`
	ReturnDate   *string  `json:"return_date,omitempty"`
	Currency     string   `json:"currency"`
	Language     string   `json:"language"`
	Adults       int      `json:"adults"`
	Children     int      `json:"children"`
	Infants      int      `json:"infants"`
	TravelClass  string   `json:"travel_class"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Stops        *string  `json:"stops,omitempty"`
}

// Normalize validates the request and returns criteria with defaults applied.
// The receiver is left untouched.
func (r SearchFlightsRequest) Normalize() (SearchCriteria, error) {
	c := SearchCriteria{
		DepartureID:  strings.TrimSpace(r.DepartureID),
		ArrivalID:    strings.TrimSpace(r.ArrivalID),
		OutboundDate: strings.TrimSpace(r.OutboundDate),
		Currency:     DefaultCurrency,
		Language:     DefaultLanguage,
		Adults:       DefaultAdults,
		TravelClass:  DefaultTravelClass,
	}

	if len(c.DepartureID) < 3 {
		return SearchCriteria{}, NewValidationError("departure_id", "must have at least 3 characters")
	}
	if len(c.ArrivalID) < 3 {
		return SearchCriteria{}, NewValidationError("arrival_id", "must have at least 3 characters")
	}
	if !datePattern.MatchString(c.OutboundDate) {
		return SearchCriteria{}, NewValidationError("outbound_date", "must match YYYY-MM-DD")
	}
	if r.ReturnDate != nil {
		if rd := strings.TrimSpace(*r.ReturnDate); rd != "" {
			if !datePattern.MatchString(rd) {
				return SearchCriteria{}, NewValidationError("return_date", "must match YYYY-MM-DD")
			}
			c.ReturnDate = &rd
		}
	}

	if v := optionalString(r.Currency); v != "" {
		c.Currency = v
	}
	if v := optionalString(r.Language); v != "" {
		c.Language = v
	}

	if r.Adults != nil {
		if *r.Adults < 1 || *r.Adults > MaxAdults {
			return SearchCriteria{}, NewValidationError("adults", "must be between 1 and 9")
		}
		c.Adults = *r.Adults
	}
	if r.Children != nil {
		if *r.Children < 0 || *r.Children > MaxChildren {
			return SearchCriteria{}, NewValidationError("children", "must be between 0 and 8")
		}
		c.Children = *r.Children
	}
	if r.Infants != nil {
		if *r.Infants < 0 || *r.Infants > MaxInfants {
			return SearchCriteria{}, NewValidationError("infants", "must be between 0 and 8")
		}
		c.Infants = *r.Infants
	}

	if v := optionalString(r.TravelClass); v != "" {
		switch v {
		case "1", "2", "3", "4":
			c.TravelClass = v
		default:
			return SearchCriteria{}, NewValidationError("travel_class", "must be one of 1, 2, 3, 4")
		}
	}

	if r.MaxPrice != nil {
		if *r.MaxPrice <= 0 {
			return SearchCriteria{}, NewValidationError("max_price", "must be positive")
		}
		mp := *r.MaxPrice
		c.MaxPrice = &mp
	}

	if v := optionalString(r.Stops); v != "" {
		switch v {
		case "0", "1", "2":
			c.Stops = &v
		default:
			return SearchCriteria{}, NewValidationError("stops", "must be one of 0, 1, 2")
		}
	}

	return c, nil
}

type SearchAirportsRequest struct {
	Query    string  `json:"query"`
	Language *string `json:"language,omitempty"`
}

type AirportQuery struct {
	Query    string `json:"query"`
	Language string `json:"language"`
}

func (r SearchAirportsRequest) Normalize() (AirportQuery, error) {
	q := AirportQuery{
		Query:    strings.TrimSpace(r.Query),
		Language: DefaultLanguage,
	}
	if len([]rune(q.Query)) < 2 {
		return AirportQuery{}, NewValidationError("query", "must have at least 2 characters")
	}
	if v := optionalString(r.Language); v != "" {
		q.Language = v
	}
	return q, nil
}

type FlightInsightsRequest struct {
	FlightsData string  `json:"flights_data"`
	Criteria    *string `json:"criteria,omitempty"`
}

type InsightQuery struct {
	FlightsData string
	Criterion   string
}

func (r FlightInsightsRequest) Normalize() (InsightQuery, error) {
	if strings.TrimSpace(r.FlightsData) == "" {
		return InsightQuery{}, NewValidationError("flights_data", "is required")
	}
	q := InsightQuery{FlightsData: r.FlightsData, Criterion: DefaultCriterion}
	if v := optionalString(r.Criteria); v != "" {
		q.Criterion = v
	}
	return q, nil
}

func optionalString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
