package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/lead-router/internal/entity"
)

// ErrRuleDuplicate indicates a rule with the same id already exists.
var ErrRuleDuplicate = errors.New("routing rule already exists")

// RulesRepository declares persistence operations for routing rules.
type RulesRepository interface {
	ListActive(ctx context.Context) ([]entity.RoutingRule, error)
	Insert(ctx context.Context, rule entity.RoutingRule) error
}

// PGXRulesRepository implements RulesRepository with pgx.
type PGXRulesRepository struct {
	pool pgxPool
}

// NewPGXRulesRepository wires a pgx backed rules repository.
func NewPGXRulesRepository(pool *pgxpool.Pool) *PGXRulesRepository {
	return &PGXRulesRepository{pool: pool}
}

// ListActive loads active routing rules ordered by priority.
func (r *PGXRulesRepository) ListActive(ctx context.Context) ([]entity.RoutingRule, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, priority, conditions, assign_to, is_active
        FROM routing_rules
        WHERE is_active = true
        ORDER BY priority
    `)
	if err != nil {
		return nil, fmt.Errorf("list routing rules: %w", err)
	}
	defer rows.Close()

	var rules []entity.RoutingRule
	for rows.Next() {
		var (
			rule          entity.RoutingRule
			rawConditions []byte
		)
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Priority, &rawConditions, &rule.AssignTo, &rule.IsActive); err != nil {
			return nil, fmt.Errorf("scan routing rule row: %w", err)
		}
		if len(rawConditions) > 0 {
			if err := json.Unmarshal(rawConditions, &rule.Conditions); err != nil {
				return nil, fmt.Errorf("decode conditions for %s: %w", rule.ID, err)
			}
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routing rules: %w", err)
	}
	return rules, nil
}

// Insert persists a new routing rule.
func (r *PGXRulesRepository) Insert(ctx context.Context, rule entity.RoutingRule) error {
	conditions, err := json.Marshal(rule.Conditions)
	if err != nil {
		return fmt.Errorf("encode conditions: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO routing_rules (id, name, priority, conditions, assign_to, is_active, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
    `, rule.ID, rule.Name, rule.Priority, conditions, rule.AssignTo, rule.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %v", ErrRuleDuplicate, pgErr)
		}
		return fmt.Errorf("insert routing rule: %w", err)
	}
	return nil
}
