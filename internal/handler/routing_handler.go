package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-router/internal/dto"
	"github.com/octobees/lead-router/internal/entity"
	middleware "github.com/octobees/lead-router/internal/middleware"
	"github.com/octobees/lead-router/internal/repository"
	"github.com/octobees/lead-router/internal/service"
	"github.com/octobees/lead-router/internal/service/routing"
	"github.com/octobees/lead-router/internal/service/scoring"
)

// RoutingHandler exposes the lead routing endpoints.
type RoutingHandler struct {
	engine     *routing.Engine
	intake     *service.LeadIntake
	decisions  repository.DecisionsRepository
	dispatcher DispatchPoster
}

// NewRoutingHandler constructs a routing handler. The decision log and the
// dispatcher are optional; when nil those steps are skipped.
func NewRoutingHandler(engine *routing.Engine, intake *service.LeadIntake, decisions repository.DecisionsRepository, dispatcher DispatchPoster) *RoutingHandler {
	return &RoutingHandler{
		engine:     engine,
		intake:     intake,
		decisions:  decisions,
		dispatcher: dispatcher,
	}
}

// Route handles POST /routing/route requests.
func (h *RoutingHandler) Route(c echo.Context) error {
	var req dto.RouteLeadRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	lead := entity.Lead{
		ID:                uuid.New(),
		Name:              req.Lead.Name,
		Email:             req.Lead.Email,
		Phone:             req.Lead.Phone,
		Company:           req.Lead.Company,
		IndustrySector:    req.Lead.IndustrySector,
		ProductCategory:   req.Lead.ProductCategory,
		BudgetRange:       req.Lead.BudgetRange,
		Urgency:           req.Lead.Urgency,
		CompanySize:       req.Lead.CompanySize,
		PreferredLanguage: req.Lead.PreferredLanguage,
		Timezone:          req.Lead.Timezone,
		Message:           req.Lead.Message,
	}

	lead, err := h.intake.Normalize(lead)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to process lead")
	}

	score := scoring.ComputeScore(scoring.LeadSignals{
		Industry:           lead.IndustrySector,
		BudgetRange:        lead.BudgetRange,
		Urgency:            lead.Urgency,
		TimeOnPageSeconds:  req.Behavior.TimeOnPageSeconds,
		ScrollDepthPercent: req.Behavior.ScrollDepthPercent,
		MessageLength:      len(lead.Message),
		DeclaredScore:      req.Behavior.DeclaredScore,
	})

	decision := h.engine.RouteLead(lead, score, req.Criteria)

	ctx := c.Request().Context()
	requestID := middleware.RequestIDFromContext(c)
	h.recordDecision(ctx, lead.ID, decision, requestID)
	h.forwardDecision(ctx, lead.ID, decision, requestID)

	return Success(c, http.StatusOK, "lead routed", dto.RouteLeadResponse{
		LeadID:   lead.ID.String(),
		Score:    score,
		Decision: decision,
	})
}

// Stats handles GET /routing/stats requests.
func (h *RoutingHandler) Stats(c echo.Context) error {
	return Success(c, http.StatusOK, "routing statistics", h.engine.GetRoutingStatistics())
}

// Workload handles GET /team/workload requests.
func (h *RoutingHandler) Workload(c echo.Context) error {
	return Success(c, http.StatusOK, "team workload", h.engine.GetTeamMemberWorkload())
}

// recordDecision appends the decision to the audit log. Failures are logged,
// never surfaced: the routing result is already computed.
func (h *RoutingHandler) recordDecision(ctx context.Context, leadID uuid.UUID, decision routing.Decision, requestID string) {
	if h.decisions == nil {
		return
	}
	if err := h.decisions.Insert(ctx, leadID, decision); err != nil {
		log.Printf("request_id=%s lead_id=%s failed to record decision: %v", requestID, leadID, err)
	}
}

// forwardDecision notifies the dispatcher for critical and high priority
// leads. Delivery is best-effort; the decision stands either way.
func (h *RoutingHandler) forwardDecision(ctx context.Context, leadID uuid.UUID, decision routing.Decision, requestID string) {
	if h.dispatcher == nil {
		return
	}
	if decision.Priority != routing.PriorityCritical && decision.Priority != routing.PriorityHigh {
		return
	}

	payload := map[string]any{
		"lead_id":                    leadID.String(),
		"assigned_to":                decision.AssignedTo,
		"priority":                   decision.Priority,
		"estimated_response_minutes": decision.EstimatedResponseMin,
	}
	if err := h.dispatcher.PostDecision(ctx, payload, requestID); err != nil {
		log.Printf("request_id=%s lead_id=%s failed to notify dispatcher: %v", requestID, leadID, err)
	}
}
