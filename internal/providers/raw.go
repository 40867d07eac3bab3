package providers

import "encoding/json"

// Raw types mirror the SerpApi google_flights payload. Every scalar is a
// pointer because the upstream omits fields freely.

type RawAirportTime struct {
	Name *string `json:"name"`
	ID   *string `json:"id"`
	Time *string `json:"time"`
}

type RawSegment struct {
	DepartureAirport *RawAirportTime `json:"departure_airport"`
	ArrivalAirport   *RawAirportTime `json:"arrival_airport"`
	Duration         *int            `json:"duration"`
	Airplane         *string         `json:"airplane"`
	Airline          *string         `json:"airline"`
	AirlineLogo      *string         `json:"airline_logo"`
	TravelClass      *string         `json:"travel_class"`
	FlightNumber     *string         `json:"flight_number"`
	Legroom          *string         `json:"legroom"`
	Extensions       []string        `json:"extensions"`
}

type RawLayover struct {
	Duration *int    `json:"duration"`
	Name     *string `json:"name"`
	ID       *string `json:"id"`
}

type RawEmissions struct {
	ThisFlight          *float64 `json:"this_flight"`
	TypicalForThisRoute *float64 `json:"typical_for_this_route"`
	DifferenceInPercent *float64 `json:"difference_in_percent"`
}

type RawOffer struct {
	Flights         []RawSegment  `json:"flights"`
	Layovers        []RawLayover  `json:"layovers"`
	TotalDuration   *int          `json:"total_duration"`
	CarbonEmissions *RawEmissions `json:"carbon_emissions"`
	Price           *float64      `json:"price"`
	Type            *string       `json:"type"`
	AirlineLogo     *string       `json:"airline_logo"`
	DepartureToken  *string       `json:"departure_token"`
}

type RawFlights struct {
	BestFlights  []RawOffer `json:"best_flights"`
	OtherFlights []RawOffer `json:"other_flights"`
	Error        string     `json:"error"`

	// Document is the provider body exactly as received.
	Document json.RawMessage `json:"-"`
}

type RawAirport struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	CountryCode *string `json:"country_code"`
	Image       *string `json:"image"`
}

type RawAirports struct {
	Airports []RawAirport `json:"airports"`
	Error    string       `json:"error"`
}
