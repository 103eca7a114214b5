package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/events"
	"github.com/casaflow/community-service/internal/repository"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// WorkItemService exposes read access and the owner-approval action on
// persisted work items.
type WorkItemService struct {
	workItems   repository.WorkItemRepository
	technicians repository.TechnicianRepository
	dispatcher  events.Dispatcher
}

// NewWorkItemService constructs the service.
func NewWorkItemService(workItems repository.WorkItemRepository, technicians repository.TechnicianRepository, dispatcher events.Dispatcher) *WorkItemService {
	return &WorkItemService{workItems: workItems, technicians: technicians, dispatcher: dispatcher}
}

// WorkItemListFilter describes listing parameters for residents and owners.
type WorkItemListFilter struct {
	Kind       *domain.WorkItemKind
	Statuses   []domain.WorkItemStatus
	Priorities []domain.Priority
	Limit      int
	Offset     int
}

// List returns work items visible to the resident: owners see their whole
// community, residents only their own submissions.
func (s *WorkItemService) List(ctx context.Context, resident *domain.Resident, filter WorkItemListFilter) ([]domain.WorkItem, error) {
	if resident == nil {
		return nil, apperrors.NewUnauthorized("resident required")
	}
	repoFilter := repository.WorkItemFilter{
		Kind:       filter.Kind,
		Statuses:   filter.Statuses,
		Priorities: filter.Priorities,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if resident.Role == domain.RoleOwner {
		repoFilter.CommunityID = &resident.CommunityID
	} else {
		repoFilter.RequesterID = &resident.ID
	}
	items, err := s.workItems.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return items, nil
}

// Get fetches one work item by ID or ticket number, enforcing visibility.
func (s *WorkItemService) Get(ctx context.Context, resident *domain.Resident, id string) (*domain.WorkItem, error) {
	if resident == nil {
		return nil, apperrors.NewUnauthorized("resident required")
	}
	var item *domain.WorkItem
	var err error
	if strings.HasPrefix(id, "REQ-") {
		item, err = s.workItems.GetByTicketNumber(ctx, id)
	} else {
		item, err = s.workItems.GetByID(ctx, id)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("work item", map[string]any{"work_item_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !canView(resident, item) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return item, nil
}

// ApproveService flips the owner-approval flag on a ServiceRequest. Approval
// moves the item to ASSIGNED when a technician is already stored, PENDING
// otherwise.
func (s *WorkItemService) ApproveService(ctx context.Context, owner *domain.Resident, id string) (*domain.WorkItem, error) {
	if owner == nil || owner.Role != domain.RoleOwner {
		return nil, apperrors.NewForbidden("owner role required")
	}
	item, err := s.workItems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("work item", map[string]any{"work_item_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if item.CommunityID != owner.CommunityID {
		return nil, apperrors.NewForbidden("work item outside owner community")
	}
	if item.Kind != domain.KindServiceRequest {
		return nil, apperrors.NewConflict("only service requests require approval", map[string]any{"kind": item.Kind})
	}
	if item.Status != domain.StatusAwaitingApproval {
		return nil, apperrors.NewConflict("service request not awaiting approval", map[string]any{"status": item.Status})
	}

	item.ApprovedByOwner = true
	if item.TechnicianID != nil {
		item.Status = domain.StatusAssigned
	} else {
		item.Status = domain.StatusPending
	}
	if err := s.workItems.Update(ctx, item); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventServiceApproved, item.ID, owner.ID, events.ServiceApprovedPayload{
			TicketNumber: item.TicketNumber,
			NewStatus:    item.Status,
		}))
	}
	return item, nil
}

// TechnicianName resolves the assigned technician's display name for a work
// item, empty when unassigned.
func (s *WorkItemService) TechnicianName(ctx context.Context, item *domain.WorkItem) string {
	if item == nil || item.TechnicianID == nil {
		return ""
	}
	tech, err := s.technicians.GetByID(ctx, *item.TechnicianID)
	if err != nil {
		return ""
	}
	return tech.Name
}

func canView(resident *domain.Resident, item *domain.WorkItem) bool {
	if resident.Role == domain.RoleOwner {
		return item.CommunityID == resident.CommunityID
	}
	return item.RequesterID == resident.ID
}
