package projector

import (
	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/providers"
	"github.com/dharmasatrya/flightmcp/pkg/currency"
)

// UnknownAirline stands in for offers whose first segment names no carrier.
const UnknownAirline = "N/A"

// Project flattens best_flights followed by other_flights, keeping provider
// order inside each group. Prices are formatted for lang.
func Project(raw *providers.RawFlights, currencyCode, lang string) []models.FlightOffer {
	if raw == nil {
		return []models.FlightOffer{}
	}

	offers := make([]models.FlightOffer, 0, len(raw.BestFlights)+len(raw.OtherFlights))
	for _, r := range raw.BestFlights {
		offers = append(offers, normalize(r, currencyCode, lang))
	}
	for _, r := range raw.OtherFlights {
		offers = append(offers, normalize(r, currencyCode, lang))
	}
	return offers
}

func normalize(r providers.RawOffer, currencyCode, lang string) models.FlightOffer {
	offer := models.FlightOffer{
		AirlineLogo:     r.AirlineLogo,
		Price:           r.Price,
		Currency:        currencyCode,
		TotalDuration:   r.TotalDuration,
		CarbonEmissions: emissions(r.CarbonEmissions),
		Type:            r.Type,
		DepartureToken:  r.DepartureToken,
	}

	if r.Price != nil {
		offer.PriceFormatted = currency.Format(*r.Price, currencyCode, lang)
	}

	airline := UnknownAirline
	if len(r.Flights) > 0 {
		first := r.Flights[0]
		last := r.Flights[len(r.Flights)-1]

		if first.Airline != nil && *first.Airline != "" {
			airline = *first.Airline
		}
		offer.DepartureAirport = airportTime(first.DepartureAirport)
		offer.ArrivalAirport = airportTime(last.ArrivalAirport)
		if offer.DepartureAirport != nil {
			offer.DepartureTime = offer.DepartureAirport.Time
		}
		if offer.ArrivalAirport != nil {
			offer.ArrivalTime = offer.ArrivalAirport.Time
		}

		stops := len(r.Flights) - 1
		offer.Stops = &stops

		offer.FlightDetails = make([]models.Segment, len(r.Flights))
		for i, s := range r.Flights {
			offer.FlightDetails[i] = segment(s)
		}
	}
	offer.Airline = &airline

	if len(r.Layovers) > 0 {
		offer.Layovers = make([]models.Layover, len(r.Layovers))
		for i, l := range r.Layovers {
			offer.Layovers[i] = models.Layover{Duration: l.Duration, Name: l.Name, ID: l.ID}
		}
	}

	return offer
}

func segment(s providers.RawSegment) models.Segment {
	return models.Segment{
		Airline:          s.Airline,
		AirlineLogo:      s.AirlineLogo,
		FlightNumber:     s.FlightNumber,
		DepartureAirport: airportTime(s.DepartureAirport),
		ArrivalAirport:   airportTime(s.ArrivalAirport),
		Duration:         s.Duration,
		Airplane:         s.Airplane,
		Legroom:          s.Legroom,
		Extensions:       s.Extensions,
	}
}

func airportTime(a *providers.RawAirportTime) *models.AirportTime {
	if a == nil {
		return nil
	}
	return &models.AirportTime{ID: a.ID, Name: a.Name, Time: a.Time}
}

func emissions(e *providers.RawEmissions) *models.CarbonEmissions {
	if e == nil {
		return nil
	}
	return &models.CarbonEmissions{
		ThisFlight:          e.ThisFlight,
		TypicalForThisRoute: e.TypicalForThisRoute,
		DifferencePercent:   e.DifferenceInPercent,
	}
}

// Summarize builds the search summary. The price range covers priced offers
// only and is omitted when there are none.
func Summarize(c models.SearchCriteria, offers []models.FlightOffer) models.SearchSummary {
	summary := models.SearchSummary{
		TotalFlightsFound: len(offers),
		Airlines:          []string{},
		SearchParameters: models.SearchParameters{
			Route:         c.DepartureID + " → " + c.ArrivalID,
			DepartureDate: c.OutboundDate,
			ReturnDate:    c.ReturnDate,
			Passengers: models.Passengers{
				Adults:   c.Adults,
				Children: c.Children,
				Infants:  c.Infants,
			},
		},
	}

	seen := make(map[string]struct{})
	for _, o := range offers {
		if o.Airline != nil {
			if _, ok := seen[*o.Airline]; !ok {
				seen[*o.Airline] = struct{}{}
				summary.Airlines = append(summary.Airlines, *o.Airline)
			}
		}

		if o.Price == nil {
			continue
		}
		if summary.PriceRange == nil {
			summary.PriceRange = &models.PriceRange{Min: *o.Price, Max: *o.Price, Currency: c.Currency}
			continue
		}
		if *o.Price < summary.PriceRange.Min {
			summary.PriceRange.Min = *o.Price
		}
		if *o.Price > summary.PriceRange.Max {
			summary.PriceRange.Max = *o.Price
		}
	}

	return summary
}

func ProjectAirports(query string, raw *providers.RawAirports) models.AirportSearchResult {
	result := models.AirportSearchResult{Query: query, Airports: []models.Airport{}}
	if raw == nil {
		return result
	}
	for _, a := range raw.Airports {
		result.Airports = append(result.Airports, models.Airport{
			ID:          a.ID,
			Name:        a.Name,
			City:        a.City,
			Country:     a.Country,
			CountryCode: a.CountryCode,
			Image:       a.Image,
		})
	}
	result.TotalAirportsFound = len(result.Airports)
	return result
}
