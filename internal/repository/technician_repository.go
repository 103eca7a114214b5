package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casaflow/community-service/internal/domain"
)

// TechnicianRepository handles persistence for technicians and their
// community assignments.
type TechnicianRepository interface {
	Create(ctx context.Context, tech *domain.Technician) error
	GetByID(ctx context.Context, id string) (*domain.Technician, error)
	// ListEligible returns available technicians assigned to the community
	// with the given skill, ordered by ascending open-issue count then open
	// service count. Load counts are computed live from work_items.
	ListEligible(ctx context.Context, communityID string, skill domain.TechnicianSkill) ([]domain.TechnicianLoad, error)
	SetAvailability(ctx context.Context, id string, available bool) error
}

type technicianRepository struct {
	pool *pgxpool.Pool
}

// NewTechnicianRepository instantiates the repository.
func NewTechnicianRepository(pool *pgxpool.Pool) TechnicianRepository {
	return &technicianRepository{pool: pool}
}

func (r *technicianRepository) Create(ctx context.Context, tech *domain.Technician) error {
	const query = `
        INSERT INTO technicians (name, phone, skill, available_flag)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	if err := r.pool.QueryRow(ctx, query,
		tech.Name,
		tech.Phone,
		tech.Skill,
		tech.Available,
	).Scan(&tech.ID, &tech.CreatedAt, &tech.UpdatedAt); err != nil {
		return err
	}

	for _, communityID := range tech.CommunityIDs {
		const assign = `
            INSERT INTO technician_communities (technician_id, community_id)
            VALUES ($1,$2) ON CONFLICT DO NOTHING`
		if _, err := r.pool.Exec(ctx, assign, tech.ID, communityID); err != nil {
			return err
		}
	}
	return nil
}

func (r *technicianRepository) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	const query = `
        SELECT id, name, phone, skill, available_flag, created_at, updated_at
        FROM technicians WHERE id=$1`

	var tech domain.Technician
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&tech.ID,
		&tech.Name,
		&tech.Phone,
		&tech.Skill,
		&tech.Available,
		&tech.CreatedAt,
		&tech.UpdatedAt,
	); err != nil {
		return nil, err
	}

	const communities = `
        SELECT community_id FROM technician_communities WHERE technician_id=$1`
	rows, err := r.pool.Query(ctx, communities, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var communityID string
		if err := rows.Scan(&communityID); err != nil {
			return nil, err
		}
		tech.CommunityIDs = append(tech.CommunityIDs, communityID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &tech, nil
}

func (r *technicianRepository) ListEligible(ctx context.Context, communityID string, skill domain.TechnicianSkill) ([]domain.TechnicianLoad, error) {
	const query = `
        SELECT t.id, t.name, t.phone, t.skill, t.available_flag, t.created_at, t.updated_at,
               COALESCE(iss.cnt, 0) AS open_issues,
               COALESCE(srv.cnt, 0) AS open_services
        FROM technicians t
        JOIN technician_communities tc
             ON tc.technician_id = t.id AND tc.community_id = $1
        LEFT JOIN (
            SELECT technician_id, COUNT(*) AS cnt FROM work_items
            WHERE kind = 'ISSUE' AND status = ANY($3) GROUP BY technician_id
        ) iss ON iss.technician_id = t.id
        LEFT JOIN (
            SELECT technician_id, COUNT(*) AS cnt FROM work_items
            WHERE kind = 'SERVICE_REQUEST' AND status = ANY($3) GROUP BY technician_id
        ) srv ON srv.technician_id = t.id
        WHERE t.available_flag = TRUE AND t.skill = $2
        ORDER BY open_issues ASC, open_services ASC, t.created_at ASC`

	open := make([]string, 0, len(domain.OpenStatuses()))
	for _, status := range domain.OpenStatuses() {
		open = append(open, string(status))
	}

	rows, err := r.pool.Query(ctx, query, communityID, skill, open)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTechnicianLoads(rows)
}

func (r *technicianRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	const query = `
        UPDATE technicians SET available_flag=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, available, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTechnicianLoads(rows pgx.Rows) ([]domain.TechnicianLoad, error) {
	var result []domain.TechnicianLoad
	for rows.Next() {
		var load domain.TechnicianLoad
		if err := rows.Scan(
			&load.Technician.ID,
			&load.Technician.Name,
			&load.Technician.Phone,
			&load.Technician.Skill,
			&load.Technician.Available,
			&load.Technician.CreatedAt,
			&load.Technician.UpdatedAt,
			&load.OpenIssues,
			&load.OpenServices,
		); err != nil {
			return nil, err
		}
		result = append(result, load)
	}
	return result, rows.Err()
}
