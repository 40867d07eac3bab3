package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/tools"
)

// Dispatcher runs one tool command and reports the outcome in-band.
type Dispatcher interface {
	Dispatch(ctx context.Context, command string, args json.RawMessage) tools.Result
}

type CommandRequest struct {
	Command   string          `json:"command"`
	Arguments json.RawMessage `json:"arguments"`
}

type CommandHandler struct {
	dispatcher Dispatcher
}

func NewCommandHandler(d Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: d}
}

// Execute answers 200 for every dispatched command, failed or not; the
// tool's own error travels in the body.
func (h *CommandHandler) Execute(c echo.Context) error {
	var req CommandRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	req.Command = strings.TrimSpace(req.Command)
	if req.Command == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "command is required",
			Code:    http.StatusBadRequest,
		})
	}

	return c.JSON(http.StatusOK, h.dispatcher.Dispatch(c.Request().Context(), req.Command, req.Arguments))
}
