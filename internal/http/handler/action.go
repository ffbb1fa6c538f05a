package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/sathesh-kumar-v/comply/internal/http/dto"
	"github.com/sathesh-kumar-v/comply/internal/service"
)

type ActionHandler struct {
	actions     service.ActionService
	traceHeader string
}

func NewActionHandler(actions service.ActionService, traceHeader string) *ActionHandler {
	return &ActionHandler{
		actions:     actions,
		traceHeader: traceHeader,
	}
}

func (h *ActionHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	dashboard, err := h.actions.Dashboard(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build dashboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

func (h *ActionHandler) GetAction(c *gin.Context) {
	ctx := c.Request.Context()
	actionID := c.Param("actionID")

	detail, err := h.actions.GetAction(ctx, actionID)
	if err != nil {
		if errors.Is(err, service.ErrActionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Corrective action not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to load action", "error", err, "action_id", actionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load action"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *ActionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ActionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid create request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	traceID := c.GetHeader(h.traceHeader)
	if traceID == "" {
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
			traceID = spanCtx.TraceID().String()
		}
	}
	params := dto.ToActionCreateParams(req)
	if traceID != "" {
		params.TraceID = &traceID
	}

	result, err := h.actions.CreateAction(ctx, params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.ErrorContext(ctx, "failed to create action", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create action"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ActionHandler) GeneratePlan(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PlanAIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid plan request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.ProblemStatement) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Problem statement is required for AI planning"})
		return
	}

	plan := h.actions.GeneratePlan(ctx, dto.ToPlanRequest(req))

	c.JSON(http.StatusOK, plan)
}
