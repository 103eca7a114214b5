package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casaflow/community-service/internal/domain"
)

// WorkItemFilter captures listing parameters.
type WorkItemFilter struct {
	RequesterID  *string
	CommunityID  *string
	TechnicianID *string
	Kind         *domain.WorkItemKind
	Statuses     []domain.WorkItemStatus
	Priorities   []domain.Priority
	Limit        int
	Offset       int
}

// WorkItemRepository encapsulates work-item persistence.
type WorkItemRepository interface {
	Create(ctx context.Context, item *domain.WorkItem) error
	Update(ctx context.Context, item *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.WorkItem, error)
	ListWithFilter(ctx context.Context, filter WorkItemFilter) ([]domain.WorkItem, error)
}

type workItemRepository struct {
	pool *pgxpool.Pool
}

// NewWorkItemRepository instantiates the repository.
func NewWorkItemRepository(pool *pgxpool.Pool) WorkItemRepository {
	return &workItemRepository{pool: pool}
}

func (r *workItemRepository) Create(ctx context.Context, item *domain.WorkItem) error {
	const query = `
        INSERT INTO work_items (ticket_number, kind, issue_category, service_category, title, description,
                                priority, location, requester_id, community_id, technician_id, status, approved_by_owner)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		item.TicketNumber,
		item.Kind,
		item.IssueCategory,
		item.ServiceCategory,
		item.Title,
		item.Description,
		item.Priority,
		item.Location,
		item.RequesterID,
		item.CommunityID,
		item.TechnicianID,
		item.Status,
		item.ApprovedByOwner,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *workItemRepository) Update(ctx context.Context, item *domain.WorkItem) error {
	const query = `
        UPDATE work_items SET title=$1, description=$2, priority=$3, location=$4,
            technician_id=$5, status=$6, approved_by_owner=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		item.Title,
		item.Description,
		item.Priority,
		item.Location,
		item.TechnicianID,
		item.Status,
		item.ApprovedByOwner,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *workItemRepository) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return r.fetchSingle(ctx, "id=$1", id)
}

func (r *workItemRepository) GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.WorkItem, error) {
	return r.fetchSingle(ctx, "ticket_number=$1", ticketNumber)
}

func (r *workItemRepository) fetchSingle(ctx context.Context, clause string, arg any) (*domain.WorkItem, error) {
	query := fmt.Sprintf(`
        SELECT id, ticket_number, kind, issue_category, service_category, title, description,
               priority, location, requester_id, community_id, technician_id, status,
               approved_by_owner, created_at, updated_at
        FROM work_items WHERE %s`, clause)

	var item domain.WorkItem
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&item.ID,
		&item.TicketNumber,
		&item.Kind,
		&item.IssueCategory,
		&item.ServiceCategory,
		&item.Title,
		&item.Description,
		&item.Priority,
		&item.Location,
		&item.RequesterID,
		&item.CommunityID,
		&item.TechnicianID,
		&item.Status,
		&item.ApprovedByOwner,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *workItemRepository) ListWithFilter(ctx context.Context, filter WorkItemFilter) ([]domain.WorkItem, error) {
	base := `SELECT id, ticket_number, kind, issue_category, service_category, title, description,
                    priority, location, requester_id, community_id, technician_id, status,
                    approved_by_owner, created_at, updated_at
             FROM work_items`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("requester_id=$%d", len(args)))
	}
	if filter.CommunityID != nil {
		args = append(args, *filter.CommunityID)
		clauses = append(clauses, fmt.Sprintf("community_id=$%d", len(args)))
	}
	if filter.TechnicianID != nil {
		args = append(args, *filter.TechnicianID)
		clauses = append(clauses, fmt.Sprintf("technician_id=$%d", len(args)))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanWorkItems(rows)
}

func scanWorkItems(rows pgx.Rows) ([]domain.WorkItem, error) {
	var result []domain.WorkItem
	for rows.Next() {
		var item domain.WorkItem
		if err := rows.Scan(
			&item.ID,
			&item.TicketNumber,
			&item.Kind,
			&item.IssueCategory,
			&item.ServiceCategory,
			&item.Title,
			&item.Description,
			&item.Priority,
			&item.Location,
			&item.RequesterID,
			&item.CommunityID,
			&item.TechnicianID,
			&item.Status,
			&item.ApprovedByOwner,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
