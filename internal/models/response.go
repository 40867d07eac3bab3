package models

import "encoding/json"

type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

type SearchParameters struct {
	Route         string     `json:"route"`
	DepartureDate string     `json:"departure_date"`
	ReturnDate    *string    `json:"return_date,omitempty"`
	Passengers    Passengers `json:"passengers"`
}

type PriceRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

type SearchSummary struct {
	TotalFlightsFound int              `json:"total_flights_found"`
	PriceRange        *PriceRange      `json:"price_range,omitempty"`
	Airlines          []string         `json:"airlines"`
	SearchParameters  SearchParameters `json:"search_parameters"`
	SearchTimeMs      int64            `json:"search_time_ms"`
	CacheHit          bool             `json:"cache_hit"`
}

type FlightSearchResult struct {
	Summary SearchSummary   `json:"summary"`
	Flights []FlightOffer   `json:"flights"`
	RawData json.RawMessage `json:"raw_data,omitempty"`
}

type AirportSearchResult struct {
	Query              string    `json:"query"`
	TotalAirportsFound int       `json:"total_airports_found"`
	Airports           []Airport `json:"airports"`
}

type Recommendation struct {
	Type   string      `json:"type"`
	Flight FlightOffer `json:"flight"`
	Reason string      `json:"reason"`
}

// Statistics holds the aggregates of one analysis. Price figures are nil
// unless the price criterion ran over at least one priced offer.
type Statistics struct {
	AveragePrice  *float64    `json:"average_price,omitempty"`
	PriceRange    *PriceRange `json:"price_range,omitempty"`
	TotalFlights  int         `json:"total_flights"`
	AirlinesCount int         `json:"airlines_count"`
	DirectFlights int         `json:"direct_flights"`
	WithStops     int         `json:"with_stops"`
	UnknownStops  int         `json:"unknown_stops,omitempty"`
}

type InsightResult struct {
	AnalysisCriteria string           `json:"analysis_criteria"`
	Recommendations  []Recommendation `json:"recommendations"`
	Statistics       Statistics       `json:"statistics"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
