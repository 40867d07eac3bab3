package ranking

import (
	"github.com/dharmasatrya/flightmcp/internal/models"
)

// BestValue reduces the offers to the one with the strictly lowest price.
// On a tie the earlier offer wins. Unpriced offers never win.
func BestValue(offers []models.FlightOffer) (models.FlightOffer, bool) {
	var (
		best  models.FlightOffer
		found bool
	)
	for _, o := range offers {
		if o.Price == nil {
			continue
		}
		if !found || *o.Price < *best.Price {
			best = o
			found = true
		}
	}
	return best, found
}

func priceStatistics(offers []models.FlightOffer) (avg float64, rng models.PriceRange, ok bool) {
	var sum float64
	count := 0
	for _, o := range offers {
		if o.Price == nil {
			continue
		}
		p := *o.Price
		if count == 0 || p < rng.Min {
			rng.Min = p
		}
		if count == 0 || p > rng.Max {
			rng.Max = p
		}
		sum += p
		count++
	}
	if count == 0 {
		return 0, models.PriceRange{}, false
	}
	return sum / float64(count), rng, true
}
