package handler

import (
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

// RulesHandler exposes routing rule management endpoints.
type RulesHandler struct {
	engine *routing.Engine
	repo   repository.RulesRepository
}

// NewRulesHandler constructs a rules handler. The repository is optional.
func NewRulesHandler(engine *routing.Engine, repo repository.RulesRepository) *RulesHandler {
	return &RulesHandler{engine: engine, repo: repo}
}

// List handles GET /rules requests.
func (h *RulesHandler) List(c echo.Context) error {
	return Success(c, http.StatusOK, "routing rules", h.engine.Rules())
}

// Create handles POST /rules requests.
func (h *RulesHandler) Create(c echo.Context) error {
	var req dto.RoutingRuleRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.ID = strings.TrimSpace(req.ID)
	req.Name = strings.TrimSpace(req.Name)
	if req.ID == "" || req.Name == "" {
		return Error(c, http.StatusBadRequest, "id and name are required")
	}
	if req.Priority <= 0 {
		return Error(c, http.StatusBadRequest, "priority must be positive")
	}
	for _, existing := range h.engine.Rules() {
		if existing.ID == req.ID {
			return Error(c, http.StatusConflict, "routing rule already exists")
		}
	}

	rule := entity.RoutingRule{
		ID:         req.ID,
		Name:       req.Name,
		Priority:   req.Priority,
		Conditions: req.Conditions,
		AssignTo:   req.AssignTo,
		IsActive:   true,
	}

	h.engine.AddRule(rule)

	if h.repo != nil {
		if err := h.repo.Insert(c.Request().Context(), rule); err != nil {
			if errors.Is(err, repository.ErrRuleDuplicate) {
				return Error(c, http.StatusConflict, "routing rule already exists")
			}
			log.Printf("failed to persist routing rule %s: %v", rule.ID, err)
		}
	}

	return Success(c, http.StatusCreated, "routing rule created", rule)
}
