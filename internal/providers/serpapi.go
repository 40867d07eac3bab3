package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dharmasatrya/flightmcp/internal/metrics"
	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/ratelimit"
)

const (
	serpAPIName     = "serpapi"
	DefaultBaseURL  = "https://serpapi.com"
	DefaultTimeout  = 3 * time.Second
	maxResponseSize = 16 << 20

	endpointFlights  = "flights"
	endpointAirports = "airports"
)

// noResultsMarker is how SerpApi reports an empty search. It arrives as an
// error field on a 200 response and is not a failure.
const noResultsMarker = "hasn't returned any results"

type SerpAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Breaker BreakerConfig
}

type SerpAPI struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
	limiter *ratelimit.KeyedLimiter
	breaker breakerRunner
	metrics metrics.Recorder
	logger  *zap.Logger
}

type breakerRunner interface {
	Execute(req func() (interface{}, error)) (interface{}, error)
}

func NewSerpAPI(cfg SerpAPIConfig, limiter *ratelimit.KeyedLimiter, rec metrics.Recorder, logger *zap.Logger) *SerpAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Noop{}
	}
	if limiter == nil {
		limiter = ratelimit.New(ratelimit.Config{})
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger = logger.Named(serpAPIName)

	return &SerpAPI{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		client:  &http.Client{},
		limiter: limiter,
		breaker: newBreaker(serpAPIName, cfg.Breaker, rec, logger),
		metrics: rec,
		logger:  logger,
	}
}

func (s *SerpAPI) Name() string {
	return serpAPIName
}

func (s *SerpAPI) SearchFlights(ctx context.Context, criteria models.SearchCriteria) (*RawFlights, error) {
	body, err := s.call(ctx, endpointFlights, flightParams(criteria))
	if err != nil {
		return nil, err
	}

	var raw RawFlights
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, NewProviderError(serpAPIName, 0, "malformed flights response", err)
	}
	if raw.Error != "" && !strings.Contains(raw.Error, noResultsMarker) {
		return nil, NewProviderError(serpAPIName, 0, raw.Error, nil)
	}
	raw.Document = body
	return &raw, nil
}

func (s *SerpAPI) SearchAirports(ctx context.Context, query models.AirportQuery) (*RawAirports, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("type", "airports")
	params.Set("q", query.Query)
	params.Set("query", query.Query)
	params.Set("hl", query.Language)

	body, err := s.call(ctx, endpointAirports, params)
	if err != nil {
		return nil, err
	}

	var raw RawAirports
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, NewProviderError(serpAPIName, 0, "malformed airports response", err)
	}
	if raw.Error != "" && !strings.Contains(raw.Error, noResultsMarker) {
		return nil, NewProviderError(serpAPIName, 0, raw.Error, nil)
	}
	return &raw, nil
}

func flightParams(c models.SearchCriteria) url.Values {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", c.DepartureID)
	params.Set("arrival_id", c.ArrivalID)
	params.Set("outbound_date", c.OutboundDate)
	if c.ReturnDate != nil {
		params.Set("return_date", *c.ReturnDate)
	} else {
		params.Set("type", "2")
	}
	params.Set("currency", c.Currency)
	params.Set("hl", c.Language)
	params.Set("adults", strconv.Itoa(c.Adults))
	params.Set("children", strconv.Itoa(c.Children))
	params.Set("infants_in_seat", strconv.Itoa(c.Infants))
	params.Set("travel_class", c.TravelClass)
	if c.MaxPrice != nil {
		params.Set("max_price", strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	if c.Stops != nil {
		params.Set("stops", stopsParam(*c.Stops))
	}
	return params
}

// stopsParam maps the public stop filter onto SerpApi's scale, where 0 means
// any number of stops.
func stopsParam(stops string) string {
	switch stops {
	case "0":
		return "1"
	case "1":
		return "2"
	default:
		return "3"
	}
}

func (s *SerpAPI) call(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if err := s.limiter.Wait(ctx, endpoint); err != nil {
		return nil, &models.NetworkError{Op: serpAPIName + " " + endpoint, Err: err}
	}

	start := time.Now()
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.do(ctx, endpoint, params)
	})
	duration := time.Since(start)

	if err != nil {
		outcome := "error"
		if isBreakerRejection(err) {
			outcome = "rejected"
			err = NewProviderError(serpAPIName, 0, "circuit open", err)
		}
		s.metrics.ObserveProviderRequest(endpoint, outcome, duration)
		s.logger.Warn("provider request failed",
			zap.String("endpoint", endpoint),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.ObserveProviderRequest(endpoint, "success", duration)
	s.logger.Debug("provider request completed",
		zap.String("endpoint", endpoint),
		zap.Duration("duration", duration),
	)
	return out.([]byte), nil
}

func (s *SerpAPI) do(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &models.NetworkError{Op: serpAPIName + " " + endpoint, Err: redactKey(err, s.apiKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &models.NetworkError{Op: serpAPIName + " " + endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewProviderError(serpAPIName, resp.StatusCode, errorMessage(body, resp.StatusCode), nil)
	}
	return body, nil
}

func errorMessage(body []byte, status int) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return http.StatusText(status)
}

// redactKey strips the API key from url.Error messages, which quote the
// full request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
