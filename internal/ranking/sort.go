package ranking

import (
	"sort"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

type sortKey func(models.FlightOffer) (float64, bool)

func byPrice(f models.FlightOffer) (float64, bool) {
	if f.Price == nil {
		return 0, false
	}
	return *f.Price, true
}

func byDuration(f models.FlightOffer) (float64, bool) {
	if f.TotalDuration == nil {
		return 0, false
	}
	return float64(*f.TotalDuration), true
}

func byEmissions(f models.FlightOffer) (float64, bool) {
	return f.EmissionValue()
}

// sortAscending returns the offers that carry key, ordered by it. Equal keys
// keep input order. The input slice is not reordered.
func sortAscending(offers []models.FlightOffer, key sortKey) []models.FlightOffer {
	type keyed struct {
		offer models.FlightOffer
		value float64
	}

	ranked := make([]keyed, 0, len(offers))
	for _, o := range offers {
		if v, ok := key(o); ok {
			ranked = append(ranked, keyed{offer: o, value: v})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].value < ranked[j].value
	})

	result := make([]models.FlightOffer, len(ranked))
	for i, k := range ranked {
		result[i] = k.offer
	}
	return result
}
