package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casaflow/community-service/internal/domain"
)

// ResidentRepository handles persistence for residents.
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	Update(ctx context.Context, resident *domain.Resident) error
	GetByID(ctx context.Context, id string) (*domain.Resident, error)
	GetByEmail(ctx context.Context, email string) (*domain.Resident, error)
}

type residentRepository struct {
	pool *pgxpool.Pool
}

// NewResidentRepository instantiates the repository.
func NewResidentRepository(pool *pgxpool.Pool) ResidentRepository {
	return &residentRepository{pool: pool}
}

func (r *residentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	const query = `
        INSERT INTO residents (name, email, phone, password_hash, role, community_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		resident.Name,
		resident.Email,
		resident.Phone,
		resident.PasswordHash,
		resident.Role,
		resident.CommunityID,
	).Scan(&resident.ID, &resident.CreatedAt, &resident.UpdatedAt)
}

func (r *residentRepository) Update(ctx context.Context, resident *domain.Resident) error {
	const query = `
        UPDATE residents
        SET name=$1, email=$2, phone=$3, password_hash=$4, role=$5, community_id=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		resident.Name,
		resident.Email,
		resident.Phone,
		resident.PasswordHash,
		resident.Role,
		resident.CommunityID,
		resident.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *residentRepository) GetByID(ctx context.Context, id string) (*domain.Resident, error) {
	return r.fetchSingle(ctx, "id=$1", id)
}

func (r *residentRepository) GetByEmail(ctx context.Context, email string) (*domain.Resident, error) {
	return r.fetchSingle(ctx, "email=$1", email)
}

func (r *residentRepository) fetchSingle(ctx context.Context, clause string, arg any) (*domain.Resident, error) {
	query := `
        SELECT id, name, email, phone, password_hash, role, community_id, created_at, updated_at
        FROM residents WHERE ` + clause

	var resident domain.Resident
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&resident.ID,
		&resident.Name,
		&resident.Email,
		&resident.Phone,
		&resident.PasswordHash,
		&resident.Role,
		&resident.CommunityID,
		&resident.CreatedAt,
		&resident.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resident, nil
}
