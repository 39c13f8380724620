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

// ErrMemberDuplicate indicates a team member with the same id already exists.
var ErrMemberDuplicate = errors.New("team member already exists")

// TeamRepository declares persistence operations for the sales roster.
type TeamRepository interface {
	ListActive(ctx context.Context) ([]entity.TeamMember, error)
	Insert(ctx context.Context, member entity.TeamMember) error
	SaveCapacity(ctx context.Context, id string, capacity entity.Capacity, availability entity.Availability) error
	SavePerformance(ctx context.Context, id string, performance entity.Performance) error
}

// PGXTeamRepository implements TeamRepository with pgx.
type PGXTeamRepository struct {
	pool pgxPool
}

// NewPGXTeamRepository wires a pgx backed team repository.
func NewPGXTeamRepository(pool *pgxpool.Pool) *PGXTeamRepository {
	return &PGXTeamRepository{pool: pool}
}

// ListActive loads the active roster, including busy and unavailable members.
func (r *PGXTeamRepository) ListActive(ctx context.Context) ([]entity.TeamMember, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, email, role, expertise, industries, languages,
               capacity_current, capacity_maximum, availability,
               conversion_rate, avg_response_minutes, satisfaction, active_leads,
               working_hours, is_active
        FROM team_members
        WHERE is_active = true
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []entity.TeamMember
	for rows.Next() {
		var (
			m        entity.TeamMember
			rawHours []byte
		)
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Role, &m.Expertise, &m.Industries, &m.Languages,
			&m.Capacity.Current, &m.Capacity.Maximum, &m.Availability,
			&m.Performance.ConversionRate, &m.Performance.AvgResponseMinutes,
			&m.Performance.Satisfaction, &m.Performance.ActiveLeads,
			&rawHours, &m.IsActive,
		); err != nil {
			return nil, fmt.Errorf("scan team member row: %w", err)
		}
		if len(rawHours) > 0 {
			if err := json.Unmarshal(rawHours, &m.WorkingHours); err != nil {
				return nil, fmt.Errorf("decode working hours for %s: %w", m.ID, err)
			}
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}
	return members, nil
}

// Insert persists a new roster member.
func (r *PGXTeamRepository) Insert(ctx context.Context, member entity.TeamMember) error {
	hours, err := json.Marshal(member.WorkingHours)
	if err != nil {
		return fmt.Errorf("encode working hours: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO team_members (
            id, name, email, role, expertise, industries, languages,
            capacity_current, capacity_maximum, availability,
            conversion_rate, avg_response_minutes, satisfaction, active_leads,
            working_hours, is_active, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
    `, member.ID, member.Name, member.Email, member.Role,
		member.Expertise, member.Industries, member.Languages,
		member.Capacity.Current, member.Capacity.Maximum, member.Availability,
		member.Performance.ConversionRate, member.Performance.AvgResponseMinutes,
		member.Performance.Satisfaction, member.Performance.ActiveLeads,
		hours, member.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: %v", ErrMemberDuplicate, pgErr)
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// SaveCapacity persists the merged capacity state of a member.
func (r *PGXTeamRepository) SaveCapacity(ctx context.Context, id string, capacity entity.Capacity, availability entity.Availability) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE team_members
        SET capacity_current = $2, capacity_maximum = $3, availability = $4, updated_at = NOW()
        WHERE id = $1
    `, id, capacity.Current, capacity.Maximum, availability)
	if err != nil {
		return fmt.Errorf("save capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save capacity: member %s not found", id)
	}
	return nil
}

// SavePerformance persists the merged performance metrics of a member.
func (r *PGXTeamRepository) SavePerformance(ctx context.Context, id string, performance entity.Performance) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE team_members
        SET conversion_rate = $2, avg_response_minutes = $3, satisfaction = $4,
            active_leads = $5, updated_at = NOW()
        WHERE id = $1
    `, id, performance.ConversionRate, performance.AvgResponseMinutes,
		performance.Satisfaction, performance.ActiveLeads)
	if err != nil {
		return fmt.Errorf("save performance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save performance: member %s not found", id)
	}
	return nil
}
