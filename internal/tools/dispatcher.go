package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dharmasatrya/flightmcp/internal/metrics"
	"github.com/dharmasatrya/flightmcp/internal/models"
)

// FlightOperations is the service surface the tools call into.
type FlightOperations interface {
	SearchFlights(ctx context.Context, req models.SearchFlightsRequest) (*models.FlightSearchResult, error)
	SearchAirports(ctx context.Context, req models.SearchAirportsRequest) (*models.AirportSearchResult, error)
	FlightInsights(ctx context.Context, req models.FlightInsightsRequest) (*models.InsightResult, error)
}

// Result is the outcome of one command. Failures are carried in Text with
// IsError set; Dispatch never returns a Go error.
type Result struct {
	Command string `json:"command"`
	IsError bool   `json:"is_error"`
	Text    string `json:"text"`
}

var ErrUnknownTool = errors.New("unknown tool")

type Dispatcher struct {
	ops     FlightOperations
	schemas map[string]*jsonschema.Resolved
	metrics metrics.Recorder
	logger  *zap.Logger
}

func NewDispatcher(ops FlightOperations, rec metrics.Recorder, logger *zap.Logger) (*Dispatcher, error) {
	if rec == nil {
		rec = metrics.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	schemas := make(map[string]*jsonschema.Resolved, len(Names()))
	for _, name := range Names() {
		resolved, err := schemaFor(name).Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve %s schema: %w", name, err)
		}
		schemas[name] = resolved
	}

	return &Dispatcher{
		ops:     ops,
		schemas: schemas,
		metrics: rec,
		logger:  logger.Named("tools"),
	}, nil
}

func (d *Dispatcher) Dispatch(ctx context.Context, command string, args json.RawMessage) Result {
	callID := uuid.NewString()
	start := time.Now()

	payload, err := d.execute(ctx, command, args)
	duration := time.Since(start)
	d.metrics.ObserveToolCall(command, duration, err)

	if err != nil {
		d.logger.Warn("tool call failed",
			zap.String("tool", command),
			zap.String("call_id", callID),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return Result{
			Command: command,
			IsError: true,
			Text:    fmt.Sprintf("error executing %s: %s", command, err.Error()),
		}
	}

	d.logger.Info("tool call completed",
		zap.String("tool", command),
		zap.String("call_id", callID),
		zap.Duration("duration", duration),
	)
	return Result{Command: command, Text: payload}
}

func (d *Dispatcher) execute(ctx context.Context, command string, args json.RawMessage) (string, error) {
	schema, ok := d.schemas[command]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownTool, command)
	}

	args = bytes.TrimSpace(args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		args = json.RawMessage(`{}`)
	}

	var decoded any
	if err := json.Unmarshal(args, &decoded); err != nil {
		return "", fmt.Errorf("malformed arguments: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	var (
		out any
		err error
	)
	switch command {
	case ToolSearchFlights:
		var req models.SearchFlightsRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		out, err = d.ops.SearchFlights(ctx, req)
	case ToolSearchAirports:
		var req models.SearchAirportsRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		out, err = d.ops.SearchAirports(ctx, req)
	case ToolFlightInsights:
		var req models.FlightInsightsRequest
		if err := json.Unmarshal(args, &req); err != nil {
			return "", fmt.Errorf("invalid arguments: %w", err)
		}
		out, err = d.ops.FlightInsights(ctx, req)
	}
	if err != nil {
		return "", err
	}

	text, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(text), nil
}
