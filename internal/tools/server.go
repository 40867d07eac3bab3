package tools

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ServerName = "flightmcp"

// NewServer registers every flight tool on a fresh MCP server backed by d.
func NewServer(d *Dispatcher, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, &mcp.ServerOptions{HasTools: true})
	for _, tool := range Definitions() {
		tool := tool
		server.AddTool(&tool, d.handler(tool.Name))
	}
	return server
}

func (d *Dispatcher) handler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		res := d.Dispatch(ctx, name, args)
		return &mcp.CallToolResult{
			IsError: res.IsError,
			Content: []mcp.Content{&mcp.TextContent{Text: res.Text}},
		}, nil
	}
}

// RunStdio serves server over stdin/stdout until ctx is done or the client
// disconnects.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
