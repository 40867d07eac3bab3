package ranking

import (
	"strings"

	"github.com/dharmasatrya/flightmcp/internal/models"
)

const (
	CriterionPrice     = "price"
	CriterionDuration  = "duration"
	CriterionEmissions = "emissions"
)

const (
	TypeBestPrice   = "best_price"
	TypeBestValue   = "best_value"
	TypeFastest     = "fastest_flight"
	TypeEcoFriendly = "eco_friendly"
)

var criterionAliases = map[string]string{
	"price":     CriterionPrice,
	"preco":     CriterionPrice,
	"preço":     CriterionPrice,
	"duration":  CriterionDuration,
	"duracao":   CriterionDuration,
	"duração":   CriterionDuration,
	"emissions": CriterionEmissions,
	"emissoes":  CriterionEmissions,
	"emissões":  CriterionEmissions,
}

// Canonical maps a criterion tag, including its Portuguese forms, to one of
// the Criterion constants. ok is false for unknown tags.
func Canonical(criterion string) (string, bool) {
	c, ok := criterionAliases[strings.ToLower(strings.TrimSpace(criterion))]
	return c, ok
}

// Analyze ranks offers along criterion and aggregates statistics over all of
// them. An unknown criterion yields statistics with no recommendations.
func Analyze(offers []models.FlightOffer, criterion string) (*models.InsightResult, error) {
	if len(offers) == 0 {
		return nil, models.ErrEmptyInput
	}

	result := &models.InsightResult{
		AnalysisCriteria: criterion,
		Recommendations:  []models.Recommendation{},
	}

	canonical, _ := Canonical(criterion)
	switch canonical {
	case CriterionPrice:
		sorted := sortAscending(offers, byPrice)
		if len(sorted) > 0 {
			result.Recommendations = append(result.Recommendations, models.Recommendation{
				Type:   TypeBestPrice,
				Flight: sorted[0],
				Reason: "Lowest price found",
			})
		}
		if best, ok := BestValue(offers); ok {
			result.Recommendations = append(result.Recommendations, models.Recommendation{
				Type:   TypeBestValue,
				Flight: best,
				Reason: "Lowest price, earliest listed on ties",
			})
		}
		if avg, rng, ok := priceStatistics(offers); ok {
			result.Statistics.AveragePrice = &avg
			result.Statistics.PriceRange = &rng
		}

	case CriterionDuration:
		if sorted := sortAscending(offers, byDuration); len(sorted) > 0 {
			result.Recommendations = append(result.Recommendations, models.Recommendation{
				Type:   TypeFastest,
				Flight: sorted[0],
				Reason: "Shortest total travel time",
			})
		}

	case CriterionEmissions:
		if sorted := sortAscending(offers, byEmissions); len(sorted) > 0 {
			result.Recommendations = append(result.Recommendations, models.Recommendation{
				Type:   TypeEcoFriendly,
				Flight: sorted[0],
				Reason: "Lowest carbon emissions",
			})
		}
	}

	fillGeneric(&result.Statistics, offers)
	return result, nil
}

func fillGeneric(stats *models.Statistics, offers []models.FlightOffer) {
	stats.TotalFlights = len(offers)

	airlines := make(map[string]struct{})
	unnamed := false
	for _, o := range offers {
		if o.Airline == nil {
			unnamed = true
		} else {
			airlines[*o.Airline] = struct{}{}
		}

		stops, ok := o.StopCount()
		switch {
		case !ok || stops < 0:
			stats.UnknownStops++
		case stops == 0:
			stats.DirectFlights++
		default:
			stats.WithStops++
		}
	}

	stats.AirlinesCount = len(airlines)
	if unnamed {
		stats.AirlinesCount++
	}
}
