package workflow

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/tools"
)

const (
	OperationSearchFlights  = "searchFlights"
	OperationSearchAirports = "searchAirports"
	OperationFlightInsights = "getFlightInsights"

	NodeName       = "flightSearch"
	CredentialName = "flightSearchApi"
)

type Option struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Action      string `json:"action,omitempty"`
}

type DisplayOptions struct {
	Show map[string][]string `json:"show"`
}

type Property struct {
	DisplayName      string          `json:"displayName"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Default          any             `json:"default"`
	Required         bool            `json:"required,omitempty"`
	NoDataExpression bool            `json:"noDataExpression,omitempty"`
	Description      string          `json:"description,omitempty"`
	Options          []Option        `json:"options,omitempty"`
	DisplayOptions   *DisplayOptions `json:"displayOptions,omitempty"`
}

type CredentialRef struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

type Credential struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName"`
	Properties  []Property `json:"properties"`
}

type Description struct {
	DisplayName string            `json:"displayName"`
	Name        string            `json:"name"`
	Group       []string          `json:"group"`
	Version     int               `json:"version"`
	Subtitle    string            `json:"subtitle"`
	Description string            `json:"description"`
	Defaults    map[string]string `json:"defaults"`
	Inputs      []string          `json:"inputs"`
	Outputs     []string          `json:"outputs"`
	Credentials []CredentialRef   `json:"credentials"`
	Properties  []Property        `json:"properties"`
}

// field binds one node parameter to the tool argument it feeds.
type field struct {
	param       string
	arg         string
	displayName string
	kind        string
	required    bool
	description string
}

type operation struct {
	option  Option
	command string
	fields  []field
}

var operations = []operation{
	{
		option: Option{
			Name:        "Search Flights",
			Value:       OperationSearchFlights,
			Description: "Search flights between two airports",
			Action:      "Search flights between two airports",
		},
		command: tools.ToolSearchFlights,
		fields: []field{
			{"departureId", "departure_id", "Departure Airport", "string", true, "IATA code of the departure airport (e.g. GRU, JFK)"},
			{"arrivalId", "arrival_id", "Arrival Airport", "string", true, "IATA code of the arrival airport (e.g. GRU, JFK)"},
			{"outboundDate", "outbound_date", "Outbound Date", "string", true, "Departure date as YYYY-MM-DD"},
			{"returnDate", "return_date", "Return Date", "string", false, "Return date as YYYY-MM-DD (optional)"},
			{"currency", "currency", "Currency", "string", false, "Currency code, defaults to BRL"},
			{"language", "language", "Language", "string", false, "Language code, defaults to pt-BR"},
			{"adults", "adults", "Adults", "number", false, "Number of adults (1-9)"},
			{"children", "children", "Children", "number", false, "Number of children (0-8)"},
			{"infants", "infants", "Infants", "number", false, "Number of infants in seat (0-8)"},
			{"travelClass", "travel_class", "Travel Class", "string", false, "1=Economy, 2=Premium Economy, 3=Business, 4=First"},
			{"maxPrice", "max_price", "Max Price", "number", false, "Maximum ticket price"},
			{"stops", "stops", "Stops", "string", false, "0=nonstop, 1=one stop, 2=two or more"},
		},
	},
	{
		option: Option{
			Name:        "Search Airports",
			Value:       OperationSearchAirports,
			Description: "Search airports by name or code",
			Action:      "Search airports by name or code",
		},
		command: tools.ToolSearchAirports,
		fields: []field{
			{"query", "query", "Search Query", "string", true, "City, airport name or IATA code to look up"},
			{"language", "language", "Language", "string", false, "Language code, defaults to pt-BR"},
		},
	},
	{
		option: Option{
			Name:        "Get Flight Insights",
			Value:       OperationFlightInsights,
			Description: "Rank and summarize found flights",
			Action:      "Get insights about flights",
		},
		command: tools.ToolFlightInsights,
		fields: []field{
			{"flightsData", "flights_data", "Flights Data", "string", true, "Flights as JSON, usually the output of Search Flights"},
			{"criteria", "criteria", "Criteria", "string", false, "price, duration or emissions"},
		},
	},
}

func findOperation(name string) (operation, bool) {
	for _, op := range operations {
		if op.option.Value == name {
			return op, true
		}
	}
	return operation{}, false
}

// Describe returns the node description served to the workflow editor.
func Describe() Description {
	opts := make([]Option, len(operations))
	for i, op := range operations {
		opts[i] = op.option
	}

	props := []Property{{
		DisplayName:      "Operation",
		Name:             "operation",
		Type:             "options",
		Default:          OperationSearchFlights,
		NoDataExpression: true,
		Options:          opts,
	}}

	for _, op := range operations {
		for _, f := range op.fields {
			var def any = ""
			if f.kind == "number" {
				def = nil
			}
			props = append(props, Property{
				DisplayName: f.displayName,
				Name:        f.param,
				Type:        f.kind,
				Default:     def,
				Required:    f.required,
				Description: f.description,
				DisplayOptions: &DisplayOptions{
					Show: map[string][]string{"operation": {op.option.Value}},
				},
			})
		}
	}

	return Description{
		DisplayName: "Flight Search",
		Name:        NodeName,
		Group:       []string{"transform"},
		Version:     1,
		Subtitle:    `={{$parameter["operation"]}}`,
		Description: "Search flights and airports and rank results through the flight tools",
		Defaults:    map[string]string{"name": "Flight Search"},
		Inputs:      []string{"main"},
		Outputs:     []string{"main"},
		Credentials: []CredentialRef{{Name: CredentialName, Required: true}},
		Properties:  props,
	}
}

// APICredential describes the credential holding the SerpApi key.
func APICredential() Credential {
	return Credential{
		Name:        CredentialName,
		DisplayName: "Flight Search API",
		Properties: []Property{{
			DisplayName: "SERP API Key",
			Name:        "serpApiKey",
			Type:        "string",
			Default:     "",
			Required:    true,
			Description: "SerpApi key used for Google Flights lookups",
		}},
	}
}

// Item holds one input item's node parameters keyed by parameter name.
type Item map[string]any

type Envelope struct {
	Command   string         `json:"command"`
	Arguments map[string]any `json:"arguments"`
}

// ItemResult is one output item: an envelope, or an error when the item
// failed under continue-on-fail.
type ItemResult struct {
	*Envelope
	Error string `json:"error,omitempty"`
}

// Execute turns each item into a command envelope. Without continueOnFail
// the first bad item aborts the run.
func Execute(operationName string, items []Item, continueOnFail bool) ([]ItemResult, error) {
	op, ok := findOperation(operationName)
	if !ok {
		return nil, models.NewValidationError("operation", fmt.Sprintf("unknown operation %q", operationName))
	}

	results := make([]ItemResult, 0, len(items))
	for i, item := range items {
		env, err := op.envelope(item)
		if err != nil {
			if continueOnFail {
				results = append(results, ItemResult{Error: err.Error()})
				continue
			}
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		results = append(results, ItemResult{Envelope: env})
	}
	return results, nil
}

func (op operation) envelope(item Item) (*Envelope, error) {
	args := make(map[string]any, len(op.fields))
	for _, f := range op.fields {
		v, present := item[f.param]
		if present && isEmpty(v) {
			present = false
		}
		if !present {
			if f.required {
				return nil, models.NewValidationError(f.param, "is required")
			}
			continue
		}
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		args[f.arg] = v
	}
	return &Envelope{Command: op.command, Arguments: args}, nil
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}
