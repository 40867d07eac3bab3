package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightmcp/internal/models"
	"github.com/dharmasatrya/flightmcp/internal/tools"
	"github.com/dharmasatrya/flightmcp/internal/workflow"
)

type WorkflowExecuteRequest struct {
	Operation      string          `json:"operation"`
	Items          []workflow.Item `json:"items"`
	ContinueOnFail bool            `json:"continue_on_fail"`
	// Dispatch runs each envelope through the tools instead of only
	// returning it.
	Dispatch bool `json:"dispatch"`
}

type WorkflowItem struct {
	workflow.ItemResult
	Result *tools.Result `json:"result,omitempty"`
}

type WorkflowExecuteResponse struct {
	Operation string         `json:"operation"`
	Items     []WorkflowItem `json:"items"`
}

type WorkflowHandler struct {
	dispatcher Dispatcher
}

func NewWorkflowHandler(d Dispatcher) *WorkflowHandler {
	return &WorkflowHandler{dispatcher: d}
}

func (h *WorkflowHandler) Node(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"node":       workflow.Describe(),
		"credential": workflow.APICredential(),
	})
}

func (h *WorkflowHandler) Execute(c echo.Context) error {
	var req WorkflowExecuteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	results, err := workflow.Execute(req.Operation, req.Items, req.ContinueOnFail)
	if err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "validation_error",
				Message: err.Error(),
				Code:    http.StatusBadRequest,
			})
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "workflow_error",
			Message: err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}

	resp := WorkflowExecuteResponse{Operation: req.Operation, Items: make([]WorkflowItem, 0, len(results))}
	for _, r := range results {
		item := WorkflowItem{ItemResult: r}
		if req.Dispatch && r.Envelope != nil {
			args, err := json.Marshal(r.Arguments)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error:   "workflow_error",
					Message: err.Error(),
					Code:    http.StatusInternalServerError,
				})
			}
			res := h.dispatcher.Dispatch(c.Request().Context(), r.Command, args)
			item.Result = &res
		}
		resp.Items = append(resp.Items, item)
	}

	return c.JSON(http.StatusOK, resp)
}
