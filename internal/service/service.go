package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightmcp/internal/cache"
	"github.com/dharmasatrya/flightmcp/internal/metrics"
	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/projector"
	"github.com/dharmasatrya/flightmcp/internal/providers"
	"github.com/dharmasatrya/flightmcp/internal/ranking"
)

type Config struct {
	// IncludeRawData attaches the provider document to search results.
	IncludeRawData bool
}

// FlightService runs the three flight operations against one provider.
type FlightService struct {
	provider providers.Provider
	cache    cache.Cache
	metrics  metrics.Recorder
	logger   *zap.Logger
	config   Config
}

func New(provider providers.Provider, c cache.Cache, rec metrics.Recorder, logger *zap.Logger, config Config) *FlightService {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlightService{
		provider: provider,
		cache:    c,
		metrics:  rec,
		logger:   logger.Named("service"),
		config:   config,
	}
}

func (s *FlightService) SearchFlights(ctx context.Context, req models.SearchFlightsRequest) (*models.FlightSearchResult, error) {
	startTime := time.Now()

	criteria, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	if cached, found := s.cache.Get(ctx, criteria); found {
		s.metrics.ObserveCacheLookup("hit")
		// Cached results are shared, so the summary is copied before the
		// per-call fields are set.
		hit := *cached
		hit.Summary.CacheHit = true
		hit.Summary.SearchTimeMs = time.Since(startTime).Milliseconds()
		return &hit, nil
	}
	s.metrics.ObserveCacheLookup("miss")

	raw, err := s.provider.SearchFlights(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	offers := projector.Project(raw, criteria.Currency, criteria.Language)
	result := &models.FlightSearchResult{
		Summary: projector.Summarize(criteria, offers),
		Flights: offers,
	}
	if s.config.IncludeRawData {
		result.RawData = raw.Document
	}

	if err := s.cache.Set(ctx, criteria, result); err != nil {
		s.logger.Warn("failed to cache search result", zap.Error(err))
	}

	s.logger.Debug("flight search completed",
		zap.String("route", result.Summary.SearchParameters.Route),
		zap.Int("offers", len(offers)),
	)

	out := *result
	out.Summary.SearchTimeMs = time.Since(startTime).Milliseconds()
	return &out, nil
}

func (s *FlightService) SearchAirports(ctx context.Context, req models.SearchAirportsRequest) (*models.AirportSearchResult, error) {
	query, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.SearchAirports(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search airports: %w", err)
	}

	result := projector.ProjectAirports(query.Query, raw)
	return &result, nil
}

// FlightInsights takes offers as a JSON document, normally a previous
// search_flights result, and ranks them.
func (s *FlightService) FlightInsights(ctx context.Context, req models.FlightInsightsRequest) (*models.InsightResult, error) {
	query, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	offers, err := ranking.ParseOffers(query.FlightsData)
	if err != nil {
		return nil, err
	}

	if _, known := ranking.Canonical(query.Criterion); !known {
		s.logger.Info("unknown insight criterion, returning statistics only",
			zap.String("criterion", query.Criterion),
		)
	}

	return ranking.Analyze(offers, query.Criterion)
}
