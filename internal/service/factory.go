package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/repository"
)

// RequestFactory persists classified requests as one of the two work-item
// variants, applying each variant's initial-status policy.
type RequestFactory struct {
	workItems repository.WorkItemRepository
}

// NewRequestFactory constructs the factory.
func NewRequestFactory(workItems repository.WorkItemRepository) *RequestFactory {
	return &RequestFactory{workItems: workItems}
}

// Create builds and persists the work item. Issues start ASSIGNED when a
// technician was matched, PENDING otherwise. ServiceRequests always start
// AWAITING_APPROVAL: a technician may be pre-stored, but work waits for the
// owner to approve.
func (f *RequestFactory) Create(ctx context.Context, classification ClassificationResult, requesterID, communityID, location string, technician *domain.Technician) (*domain.WorkItem, error) {
	item := &domain.WorkItem{
		TicketNumber: generateTicketNumber(),
		Title:        classification.Title,
		Description:  classification.Description,
		Priority:     classification.Priority,
		Location:     location,
		RequesterID:  requesterID,
		CommunityID:  communityID,
	}
	if technician != nil {
		item.TechnicianID = &technician.ID
	}

	if classification.IsIssue {
		item.Kind = domain.KindIssue
		item.IssueCategory = classification.IssueCategory
		if technician != nil {
			item.Status = domain.StatusAssigned
		} else {
			item.Status = domain.StatusPending
		}
	} else {
		item.Kind = domain.KindServiceRequest
		item.ServiceCategory = classification.ServiceCategory
		item.Status = domain.StatusAwaitingApproval
		item.ApprovedByOwner = false
	}

	if err := f.workItems.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func generateTicketNumber() string {
	return "REQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
