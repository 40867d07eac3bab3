package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/tools"
)

func TestDescribe_OperationsAndProperties(t *testing.T) {
	d := Describe()

	require.NotEmpty(t, d.Properties)
	opProp := d.Properties[0]
	assert.Equal(t, "operation", opProp.Name)
	assert.Equal(t, OperationSearchFlights, opProp.Default)

	values := make([]string, 0, len(opProp.Options))
	for _, o := range opProp.Options {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{OperationSearchFlights, OperationSearchAirports, OperationFlightInsights}, values)

	required := map[string]bool{}
	for _, p := range d.Properties[1:] {
		require.NotNil(t, p.DisplayOptions, p.Name)
		if p.Required {
			required[p.Name] = true
		}
	}
	assert.Equal(t, map[string]bool{
		"departureId": true, "arrivalId": true, "outboundDate": true,
		"query": true, "flightsData": true,
	}, required)

	assert.Equal(t, []CredentialRef{{Name: CredentialName, Required: true}}, d.Credentials)
}

func TestAPICredential(t *testing.T) {
	c := APICredential()
	require.Len(t, c.Properties, 1)
	assert.Equal(t, "serpApiKey", c.Properties[0].Name)
	assert.True(t, c.Properties[0].Required)
}

func TestEnvelopeArgumentsMatchToolSchemas(t *testing.T) {
	schemas := map[string]map[string]bool{}
	for _, def := range tools.Definitions() {
		raw, err := json.Marshal(def.InputSchema)
		require.NoError(t, err)
		var schema struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		require.NoError(t, json.Unmarshal(raw, &schema))
		names := map[string]bool{}
		for name := range schema.Properties {
			names[name] = true
		}
		schemas[def.Name] = names
	}

	for _, op := range operations {
		props, ok := schemas[op.command]
		require.True(t, ok, op.command)
		for _, f := range op.fields {
			assert.True(t, props[f.arg], "%s has no argument %s", op.command, f.arg)
		}
	}
}

func TestExecute_SearchFlights(t *testing.T) {
	items := []Item{{
		"departureId":  "GRU",
		"arrivalId":    "JFK",
		"outboundDate": "2026-12-01",
		"returnDate":   "",
		"adults":       2.0,
		"travelClass":  "3",
	}}

	results, err := Execute(OperationSearchFlights, items, false)
	require.NoError(t, err)
	require.Len(t, results, 1)

	env := results[0].Envelope
	require.NotNil(t, env)
	assert.Equal(t, "search_flights", env.Command)
	assert.Equal(t, map[string]any{
		"departure_id":  "GRU",
		"arrival_id":    "JFK",
		"outbound_date": "2026-12-01",
		"adults":        2.0,
		"travel_class":  "3",
	}, env.Arguments)
}

func TestExecute_OtherOperations(t *testing.T) {
	results, err := Execute(OperationSearchAirports, []Item{{"query": "Lisboa"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "search_airports", results[0].Command)
	assert.Equal(t, map[string]any{"query": "Lisboa"}, results[0].Arguments)

	results, err = Execute(OperationFlightInsights, []Item{{"flightsData": `{"flights": []}`, "criteria": "duration"}}, false)
	require.NoError(t, err)
	assert.Equal(t, "get_flight_insights", results[0].Command)
	assert.Equal(t, "duration", results[0].Arguments["criteria"])
}

func TestExecute_MissingRequiredFails(t *testing.T) {
	items := []Item{{"query": "Lisboa"}, {"query": "  "}}

	_, err := Execute(OperationSearchAirports, items, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "query", vErr.Field)
}

func TestExecute_ContinueOnFail(t *testing.T) {
	items := []Item{{}, {"query": "Porto"}}

	results, err := Execute(OperationSearchAirports, items, true)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Nil(t, results[0].Envelope)
	assert.Equal(t, "query: is required", results[0].Error)
	assert.Equal(t, "search_airports", results[1].Command)

	raw, err := json.Marshal(results)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"error": "query: is required"}, {"command": "search_airports", "arguments": {"query": "Porto"}}]`, string(raw))
}

func TestExecute_UnknownOperation(t *testing.T) {
	_, err := Execute("bookFlight", []Item{{}}, true)
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "operation", vErr.Field)
}
