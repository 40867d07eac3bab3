package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	ToolSearchFlights  = "search_flights"
	ToolSearchAirports = "search_airports"
	ToolFlightInsights = "get_flight_insights"
)

// Names lists the tools in registration order.
func Names() []string {
	return []string{ToolSearchFlights, ToolSearchAirports, ToolFlightInsights}
}

func Definitions() []mcp.Tool {
	return []mcp.Tool{
		{
			Name:        ToolSearchFlights,
			Description: "Search flights between two airports with optional passenger, cabin, price and stop filters",
			InputSchema: SearchFlightsSchema(),
		},
		{
			Name:        ToolSearchAirports,
			Description: "Search airports by name, city or code",
			InputSchema: SearchAirportsSchema(),
		},
		{
			Name:        ToolFlightInsights,
			Description: "Rank previously found flights by price, duration or emissions and summarize them",
			InputSchema: FlightInsightsSchema(),
		},
	}
}

func SearchFlightsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"departure_id": {
				Type:        "string",
				Description: "IATA code of the departure airport (e.g. GRU, JFK, LHR)",
			},
			"arrival_id": {
				Type:        "string",
				Description: "IATA code of the arrival airport (e.g. GRU, JFK, LHR)",
			},
			"outbound_date": {
				Type:        "string",
				Description: "Departure date as YYYY-MM-DD",
			},
			"return_date": {
				Type:        "string",
				Description: "Return date as YYYY-MM-DD, omit for one-way trips",
			},
			"currency": {
				Type:        "string",
				Description: "Currency code (BRL, USD, EUR, ...)",
				Default:     json.RawMessage(`"BRL"`),
			},
			"language": {
				Type:        "string",
				Description: "Language code (pt-BR, en, es, ...)",
				Default:     json.RawMessage(`"pt-BR"`),
			},
			"adults": {
				Type:        "integer",
				Description: "Number of adults (1-9)",
				Default:     json.RawMessage(`1`),
			},
			"children": {
				Type:        "integer",
				Description: "Number of children (0-8)",
				Default:     json.RawMessage(`0`),
			},
			"infants": {
				Type:        "integer",
				Description: "Number of infants in seat (0-8)",
				Default:     json.RawMessage(`0`),
			},
			"travel_class": {
				Type:        "string",
				Description: "Travel class: 1=Economy, 2=Premium Economy, 3=Business, 4=First",
				Enum:        []any{"1", "2", "3", "4"},
				Default:     json.RawMessage(`"1"`),
			},
			"max_price": {
				Type:        "number",
				Description: "Maximum ticket price",
			},
			"stops": {
				Type:        "string",
				Description: "Stops: 0=nonstop, 1=one stop, 2=two or more",
				Enum:        []any{"0", "1", "2"},
			},
		},
		Required: []string{"departure_id", "arrival_id", "outbound_date"},
	}
}

func SearchAirportsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "City, airport name or IATA code to look up",
			},
			"language": {
				Type:        "string",
				Description: "Language code for the results (e.g. pt-BR, en)",
				Default:     json.RawMessage(`"pt-BR"`),
			},
		},
		Required: []string{"query"},
	}
}

func FlightInsightsSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"flights_data": {
				Type:        "string",
				Description: "JSON returned by search_flights, or a JSON array of flights",
			},
			"criteria": {
				Type:        "string",
				Description: "Ranking criterion: price, duration or emissions",
				Default:     json.RawMessage(`"price"`),
			},
		},
		Required: []string{"flights_data"},
	}
}

func schemaFor(tool string) *jsonschema.Schema {
	switch tool {
	case ToolSearchFlights:
		return SearchFlightsSchema()
	case ToolSearchAirports:
		return SearchAirportsSchema()
	case ToolFlightInsights:
		return FlightInsightsSchema()
	}
	return nil
}
