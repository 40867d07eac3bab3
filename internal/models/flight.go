package models

type AirportTime struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	Time *string `json:"time,omitempty"`
}

type Segment struct {
	Airline          *string      `json:"airline,omitempty"`
	AirlineLogo      *string      `json:"airline_logo,omitempty"`
	FlightNumber     *string      `json:"flight_number,omitempty"`
	DepartureAirport *AirportTime `json:"departure_airport,omitempty"`
	ArrivalAirport   *AirportTime `json:"arrival_airport,omitempty"`
	Duration         *int         `json:"duration,omitempty"`
	Airplane         *string      `json:"airplane,omitempty"`
	Legroom          *string      `json:"legroom,omitempty"`
	Extensions       []string     `json:"extensions,omitempty"`
}

type Layover struct {
	Duration *int    `json:"duration,omitempty"`
	Name     *string `json:"name,omitempty"`
	ID       *string `json:"id,omitempty"`
}

type CarbonEmissions struct {
	ThisFlight          *float64 `json:"this_flight,omitempty"`
	TypicalForThisRoute *float64 `json:"typical_for_this_route,omitempty"`
	DifferencePercent   *float64 `json:"difference_percent,omitempty"`
}

// FlightOffer is one bookable itinerary. Optional values are pointers so that
// a missing price or duration never reads as zero.
type FlightOffer struct {
	Airline          *string          `json:"airline,omitempty"`
	AirlineLogo      *string          `json:"airline_logo,omitempty"`
	Price            *float64         `json:"price,omitempty"`
	PriceFormatted   string           `json:"price_formatted,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	TotalDuration    *int             `json:"total_duration,omitempty"`
	DepartureTime    *string          `json:"departure_time,omitempty"`
	ArrivalTime      *string          `json:"arrival_time,omitempty"`
	DepartureAirport *AirportTime     `json:"departure_airport,omitempty"`
	ArrivalAirport   *AirportTime     `json:"arrival_airport,omitempty"`
	Stops            *int             `json:"stops,omitempty"`
	Layovers         []Layover        `json:"layovers,omitempty"`
	CarbonEmissions  *CarbonEmissions `json:"carbon_emissions,omitempty"`
	FlightDetails    []Segment        `json:"flight_details,omitempty"`
	Type             *string          `json:"type,omitempty"`
	DepartureToken   *string          `json:"departure_token,omitempty"`
}

// StopCount reports the number of stops, falling back to the segment list
// when the offer carries no explicit count.
func (f FlightOffer) StopCount() (int, bool) {
	if f.Stops != nil {
		return *f.Stops, true
	}
	if len(f.FlightDetails) > 0 {
		return len(f.FlightDetails) - 1, true
	}
	return 0, false
}

// EmissionValue returns the carbon emitted by this flight, if known.
func (f FlightOffer) EmissionValue() (float64, bool) {
	if f.CarbonEmissions == nil || f.CarbonEmissions.ThisFlight == nil {
		return 0, false
	}
	return *f.CarbonEmissions.ThisFlight, true
}

type Airport struct {
	ID          *string `json:"id,omitempty"`
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	Country     *string `json:"country,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
	Image       *string `json:"image,omitempty"`
}
