package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightmcp/internal/cache"
	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/providers"
)

type fakeProvider struct {
	flights      *providers.RawFlights
	airports     *providers.RawAirports
	err          error
	flightCalls  int
	airportCalls int
	lastCriteria models.SearchCriteria
	lastQuery    models.AirportQuery
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*providers.RawFlights, error) {
	f.flightCalls++
	f.lastCriteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	return f.flights, nil
}

func (f *fakeProvider) SearchAirports(ctx context.Context, query models.AirportQuery) (*providers.RawAirports, error) {
	f.airportCalls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.airports, nil
}

const rawFlights = `{
	"best_flights": [{"flights": [{"airline": "A"}], "price": 500}],
	"other_flights": [{"flights": [{"airline": "B"}, {"airline": "B"}], "price": 300}]
}`

func newRawFlights(t *testing.T) *providers.RawFlights {
	t.Helper()
	var raw providers.RawFlights
	require.NoError(t, json.Unmarshal([]byte(rawFlights), &raw))
	raw.Document = json.RawMessage(rawFlights)
	return &raw
}

func searchRequest() models.SearchFlightsRequest {
	return models.SearchFlightsRequest{DepartureID: "GRU", ArrivalID: "JFK", OutboundDate: "2026-12-01"}
}

func TestSearchFlights_ProjectsAndSummarizes(t *testing.T) {
	p := &fakeProvider{flights: newRawFlights(t)}
	svc := New(p, cache.NewNoOpCache(), nil, nil, Config{IncludeRawData: true})

	result, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)

	assert.Equal(t, "BRL", p.lastCriteria.Currency)
	assert.Equal(t, 2, result.Summary.TotalFlightsFound)
	assert.Equal(t, []string{"A", "B"}, result.Summary.Airlines)
	assert.Equal(t, 300.0, result.Summary.PriceRange.Min)
	assert.False(t, result.Summary.CacheHit)
	assert.JSONEq(t, rawFlights, string(result.RawData))
	require.Len(t, result.Flights, 2)
	assert.Equal(t, 1, *result.Flights[1].Stops)
}

func TestSearchFlights_OmitsRawDataWhenDisabled(t *testing.T) {
	svc := New(&fakeProvider{flights: newRawFlights(t)}, nil, nil, nil, Config{})

	result, err := svc.SearchFlights(context.Background(), searchRequest())
	require.NoError(t, err)
	assert.Nil(t, result.RawData)
}

func TestSearchFlights_CacheHitSkipsProvider(t *testing.T) {
	p := &fakeProvider{flights: newRawFlights(t)}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	svc := New(p, c, nil, nil, Config{})
	ctx := context.Background()

	first, err := svc.SearchFlights(ctx, searchRequest())
	require.NoError(t, err)
	second, err := svc.SearchFlights(ctx, searchRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, p.flightCalls)
	assert.False(t, first.Summary.CacheHit)
	assert.True(t, second.Summary.CacheHit)
	assert.Equal(t, first.Flights, second.Flights)

	criteria, err := searchRequest().Normalize()
	require.NoError(t, err)
	stored, ok := c.Get(ctx, criteria)
	require.True(t, ok)
	assert.False(t, stored.Summary.CacheHit)
}

func TestSearchFlights_ValidationStopsBeforeProvider(t *testing.T) {
	p := &fakeProvider{}
	svc := New(p, nil, nil, nil, Config{})

	req := searchRequest()
	req.OutboundDate = "tomorrow"
	_, err := svc.SearchFlights(context.Background(), req)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "outbound_date", vErr.Field)
	assert.Equal(t, 0, p.flightCalls)
}

func TestSearchFlights_ProviderErrorIsWrapped(t *testing.T) {
	providerErr := &models.ProviderError{Provider: "fake", Status: 429, RateLimited: true, Message: "slow down"}
	svc := New(&fakeProvider{err: providerErr}, nil, nil, nil, Config{})

	_, err := svc.SearchFlights(context.Background(), searchRequest())

	var pErr *models.ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.True(t, pErr.RateLimited)
	assert.Contains(t, err.Error(), "search flights")
}

func TestSearchAirports(t *testing.T) {
	id, name := "GRU", "Guarulhos"
	p := &fakeProvider{airports: &providers.RawAirports{Airports: []providers.RawAirport{{ID: &id, Name: &name}}}}
	svc := New(p, nil, nil, nil, Config{})

	result, err := svc.SearchAirports(context.Background(), models.SearchAirportsRequest{Query: "Sao Paulo"})
	require.NoError(t, err)

	assert.Equal(t, "pt-BR", p.lastQuery.Language)
	assert.Equal(t, "Sao Paulo", result.Query)
	assert.Equal(t, 1, result.TotalAirportsFound)
}

func TestSearchAirports_NetworkError(t *testing.T) {
	netErr := &models.NetworkError{Op: "fake airports", Err: context.DeadlineExceeded}
	svc := New(&fakeProvider{err: netErr}, nil, nil, nil, Config{})

	_, err := svc.SearchAirports(context.Background(), models.SearchAirportsRequest{Query: "Sao Paulo"})
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestFlightInsights_FromSearchResult(t *testing.T) {
	svc := New(&fakeProvider{flights: newRawFlights(t)}, nil, nil, nil, Config{})
	ctx := context.Background()

	search, err := svc.SearchFlights(ctx, searchRequest())
	require.NoError(t, err)
	doc, err := json.Marshal(search)
	require.NoError(t, err)

	insights, err := svc.FlightInsights(ctx, models.FlightInsightsRequest{FlightsData: string(doc)})
	require.NoError(t, err)

	assert.Equal(t, "price", insights.AnalysisCriteria)
	require.NotEmpty(t, insights.Recommendations)
	assert.Equal(t, 300.0, *insights.Recommendations[0].Flight.Price)
	assert.Equal(t, 1, insights.Statistics.DirectFlights)
	assert.Equal(t, 1, insights.Statistics.WithStops)
}

func TestFlightInsights_Errors(t *testing.T) {
	svc := New(&fakeProvider{}, nil, nil, nil, Config{})
	ctx := context.Background()

	_, err := svc.FlightInsights(ctx, models.FlightInsightsRequest{FlightsData: "not json"})
	var pErr *models.ParseError
	assert.ErrorAs(t, err, &pErr)

	_, err = svc.FlightInsights(ctx, models.FlightInsightsRequest{FlightsData: `{"flights": []}`})
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}
