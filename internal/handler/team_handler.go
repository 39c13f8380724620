package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-router/internal/dto"
	"github.com/octobees/lead-router/internal/entity"
	"github.com/octobees/lead-router/internal/repository"
	"github.com/octobees/lead-router/internal/service/routing"
)

// TeamHandler exposes roster management endpoints.
type TeamHandler struct {
	engine *routing.Engine
	repo   repository.TeamRepository
}

// NewTeamHandler constructs a team handler. The repository is optional; when
// nil, changes live only in the in-memory directory.
func NewTeamHandler(engine *routing.Engine, repo repository.TeamRepository) *TeamHandler {
	return &TeamHandler{engine: engine, repo: repo}
}

// List handles GET /team requests.
func (h *TeamHandler) List(c echo.Context) error {
	return Success(c, http.StatusOK, "team roster", h.engine.Directory().Active())
}

// Create handles POST /team requests.
func (h *TeamHandler) Create(c echo.Context) error {
	var req dto.TeamMemberRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" {
		return Error(c, http.StatusBadRequest, "id and name are required")
	}
	if req.Capacity.Maximum <= 0 {
		return Error(c, http.StatusBadRequest, "capacity maximum must be positive")
	}
	if _, exists := h.engine.Directory().Get(req.ID); exists {
		return Error(c, http.StatusConflict, "team member already exists")
	}

	availability := req.Availability
	if availability == "" {
		availability = entity.AvailabilityAvailable
	}

	member := entity.TeamMember{
		ID:           req.ID,
		Name:         req.Name,
		Email:        strings.TrimSpace(req.Email),
		Role:         strings.TrimSpace(req.Role),
		Expertise:    req.Expertise,
		Industries:   req.Industries,
		Languages:    req.Languages,
		Capacity:     req.Capacity,
		Availability: availability,
		Performance:  req.Performance,
		WorkingHours: req.WorkingHours,
		IsActive:     true,
	}

	h.engine.AddTeamMember(member)

	if h.repo != nil {
		if err := h.repo.Insert(c.Request().Context(), member); err != nil {
			if errors.Is(err, repository.ErrMemberDuplicate) {
				return Error(c, http.StatusConflict, "team member already exists")
			}
			log.Printf("failed to persist team member %s: %v", member.ID, err)
		}
	}

	return Success(c, http.StatusCreated, "team member created", member)
}

// UpdateCapacity handles PATCH /team/:id/capacity requests.
func (h *TeamHandler) UpdateCapacity(c echo.Context) error {
	id := c.Param("id")

	var patch routing.CapacityPatch
	if err := c.Bind(&patch); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.engine.UpdateTeamMemberCapacity(id, patch); err != nil {
		if errors.Is(err, routing.ErrMemberNotFound) {
			return Error(c, http.StatusNotFound, "team member not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to update capacity")
	}

	member, _ := h.engine.Directory().Get(id)
	h.persistCapacity(c.Request().Context(), member)

	return Success(c, http.StatusOK, "capacity updated", member)
}

// UpdatePerformance handles PATCH /team/:id/performance requests.
func (h *TeamHandler) UpdatePerformance(c echo.Context) error {
	id := c.Param("id")

	var patch routing.PerformancePatch
	if err := c.Bind(&patch); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.engine.UpdateTeamMemberPerformance(id, patch); err != nil {
		if errors.Is(err, routing.ErrMemberNotFound) {
			return Error(c, http.StatusNotFound, "team member not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to update performance")
	}

	member, _ := h.engine.Directory().Get(id)
	h.persistPerformance(c.Request().Context(), member)

	return Success(c, http.StatusOK, "performance updated", member)
}

func (h *TeamHandler) persistCapacity(ctx context.Context, member entity.TeamMember) {
	if h.repo == nil {
		return
	}
	if err := h.repo.SaveCapacity(ctx, member.ID, member.Capacity, member.Availability); err != nil {
		log.Printf("failed to persist capacity for %s: %v", member.ID, err)
	}
}

func (h *TeamHandler) persistPerformance(ctx context.Context, member entity.TeamMember) {
	if h.repo == nil {
		return
	}
	if err := h.repo.SavePerformance(ctx, member.ID, member.Performance); err != nil {
		log.Printf("failed to persist performance for %s: %v", member.ID, err)
	}
}
