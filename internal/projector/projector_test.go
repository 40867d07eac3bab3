package projector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/providers"
)

func decodeRaw(t *testing.T, body string) *providers.RawFlights {
	t.Helper()
	var raw providers.RawFlights
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return &raw
}

func TestProject_ConcatenatesGroupsInOrder(t *testing.T) {
	raw := decodeRaw(t, `{
		"best_flights": [
			{"flights": [{"airline": "B1"}], "price": 10},
			{"flights": [{"airline": "B2"}], "price": 20}
		],
		"other_flights": [
			{"flights": [{"airline": "O1"}], "price": 5},
			{"flights": [{"airline": "O2"}], "price": 30},
			{"flights": [{"airline": "O3"}], "price": 1}
		]
	}`)

	offers := Project(raw, "USD", "en")

	require.Len(t, offers, len(raw.BestFlights)+len(raw.OtherFlights))
	names := make([]string, len(offers))
	for i, o := range offers {
		names[i] = *o.Airline
	}
	assert.Equal(t, []string{"B1", "B2", "O1", "O2", "O3"}, names)
}

func TestProject_MapsSegmentsAndEndpoints(t *testing.T) {
	raw := decodeRaw(t, `{
		"best_flights": [{
			"flights": [
				{"airline": "LATAM", "flight_number": "LA 8180",
				 "departure_airport": {"id": "GRU", "name": "Guarulhos", "time": "2026-12-01 22:00"},
				 "arrival_airport": {"id": "LIM", "name": "Jorge Chavez", "time": "2026-12-02 01:00"},
				 "duration": 300, "airplane": "Boeing 787", "legroom": "31 in", "extensions": ["Wi-Fi"]},
				{"airline": "LATAM",
				 "departure_airport": {"id": "LIM", "time": "2026-12-02 03:00"},
				 "arrival_airport": {"id": "JFK", "name": "John F. Kennedy", "time": "2026-12-02 10:00"}}
			],
			"layovers": [{"duration": 120, "name": "Jorge Chavez", "id": "LIM"}],
			"total_duration": 840,
			"carbon_emissions": {"this_flight": 550000, "typical_for_this_route": 600000, "difference_in_percent": -8},
			"price": 950,
			"type": "Round trip",
			"airline_logo": "https://example.com/la.png",
			"departure_token": "tok"
		}]
	}`)

	offers := Project(raw, "USD", "en")
	require.Len(t, offers, 1)
	o := offers[0]

	assert.Equal(t, "LATAM", *o.Airline)
	assert.Equal(t, "GRU", *o.DepartureAirport.ID)
	assert.Equal(t, "2026-12-01 22:00", *o.DepartureTime)
	assert.Equal(t, "JFK", *o.ArrivalAirport.ID)
	assert.Equal(t, "2026-12-02 10:00", *o.ArrivalTime)
	assert.Equal(t, 1, *o.Stops)
	assert.Equal(t, 840, *o.TotalDuration)
	assert.Equal(t, 950.0, *o.Price)
	assert.Equal(t, "USD", o.Currency)
	assert.Equal(t, "USD 950.00", o.PriceFormatted)
	assert.Equal(t, -8.0, *o.CarbonEmissions.DifferencePercent)
	assert.Equal(t, "tok", *o.DepartureToken)
	require.Len(t, o.FlightDetails, 2)
	assert.Equal(t, "LA 8180", *o.FlightDetails[0].FlightNumber)
	assert.Equal(t, []string{"Wi-Fi"}, o.FlightDetails[0].Extensions)
	require.Len(t, o.Layovers, 1)
	assert.Equal(t, 120, *o.Layovers[0].Duration)
}

func TestProject_AbsentFieldsStayAbsent(t *testing.T) {
	raw := decodeRaw(t, `{"other_flights": [{"flights": []}, {"flights": [{"flight_number": "X1"}]}]}`)

	offers := Project(raw, "BRL", "pt-BR")
	require.Len(t, offers, 2)

	empty := offers[0]
	assert.Equal(t, UnknownAirline, *empty.Airline)
	assert.Nil(t, empty.Price)
	assert.Empty(t, empty.PriceFormatted)
	assert.Nil(t, empty.TotalDuration)
	assert.Nil(t, empty.Stops)
	assert.Nil(t, empty.CarbonEmissions)
	assert.Nil(t, empty.DepartureTime)

	noAirline := offers[1]
	assert.Equal(t, UnknownAirline, *noAirline.Airline)
	assert.Equal(t, 0, *noAirline.Stops)
	assert.Nil(t, noAirline.Price)
}

func TestProject_NilAndEmpty(t *testing.T) {
	assert.Empty(t, Project(nil, "BRL", "pt-BR"))
	assert.Empty(t, Project(&providers.RawFlights{}, "BRL", "pt-BR"))
}

func TestSummarize(t *testing.T) {
	a, b := "A", "B"
	p1, p2 := 500.0, 300.0
	ret := "2026-12-20"
	c := models.SearchCriteria{
		DepartureID: "GRU", ArrivalID: "JFK", OutboundDate: "2026-12-01", ReturnDate: &ret,
		Currency: "BRL", Adults: 2, Children: 1,
	}
	offers := []models.FlightOffer{
		{Airline: &a, Price: &p1},
		{Airline: &b},
		{Airline: &a, Price: &p2},
	}

	s := Summarize(c, offers)

	assert.Equal(t, 3, s.TotalFlightsFound)
	assert.Equal(t, []string{"A", "B"}, s.Airlines)
	require.NotNil(t, s.PriceRange)
	assert.Equal(t, models.PriceRange{Min: 300, Max: 500, Currency: "BRL"}, *s.PriceRange)
	assert.Equal(t, "GRU → JFK", s.SearchParameters.Route)
	assert.Equal(t, &ret, s.SearchParameters.ReturnDate)
	assert.Equal(t, models.Passengers{Adults: 2, Children: 1}, s.SearchParameters.Passengers)
}

func TestSummarize_NoPricedOffers(t *testing.T) {
	s := Summarize(models.SearchCriteria{DepartureID: "GRU", ArrivalID: "JFK"}, nil)

	assert.Equal(t, 0, s.TotalFlightsFound)
	assert.Nil(t, s.PriceRange)
	assert.NotNil(t, s.Airlines)
}

func TestProjectAirports(t *testing.T) {
	var raw providers.RawAirports
	require.NoError(t, json.Unmarshal([]byte(`{"airports": [
		{"id": "CGH", "name": "Congonhas", "city": "São Paulo", "country": "Brazil", "country_code": "BR", "image": "https://example.com/cgh.jpg"},
		{"id": "GRU", "name": "Guarulhos"}
	]}`), &raw))

	result := ProjectAirports("sao paulo", &raw)

	assert.Equal(t, "sao paulo", result.Query)
	assert.Equal(t, 2, result.TotalAirportsFound)
	assert.Equal(t, "https://example.com/cgh.jpg", *result.Airports[0].Image)
	assert.Nil(t, result.Airports[1].City)

	empty := ProjectAirports("zz", nil)
	assert.Equal(t, 0, empty.TotalAirportsFound)
	assert.NotNil(t, empty.Airports)
}
