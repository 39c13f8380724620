package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-router/internal/service/routing"
)

// DecisionsRepository records routed decisions for auditing and dashboards.
type DecisionsRepository interface {
	Insert(ctx context.Context, leadID uuid.UUID, decision routing.Decision) error
}

// PGXDecisionsRepository implements DecisionsRepository with pgx.
type PGXDecisionsRepository struct {
	pool pgxPool
}

// NewPGXDecisionsRepository wires a pgx backed decision log.
func NewPGXDecisionsRepository(pool *pgxpool.Pool) *PGXDecisionsRepository {
	return &PGXDecisionsRepository{pool: pool}
}

// Insert appends one decision to the audit log.
func (r *PGXDecisionsRepository) Insert(ctx context.Context, leadID uuid.UUID, decision routing.Decision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}

	var assignedTo *string
	if decision.AssignedTo != "" {
		assignedTo = &decision.AssignedTo
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO routing_decisions (lead_id, assigned_to, priority, confidence, decision)
        VALUES ($1, $2, $3, $4, $5)
    `, leadID, assignedTo, string(decision.Priority), decision.Confidence, payload)
	if err != nil {
		return fmt.Errorf("insert routing decision: %w", err)
	}
	return nil
}
