package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/events"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

func seedServiceRequest(repo *fakeWorkItemRepo, communityID string, technicianID *string) *domain.WorkItem {
	item := &domain.WorkItem{
		TicketNumber:    "REQ-SEED0001",
		Kind:            domain.KindServiceRequest,
		ServiceCategory: domain.ServiceCleaning,
		Title:           "Deep clean",
		Priority:        domain.PriorityP4,
		RequesterID:     "resident-1",
		CommunityID:     communityID,
		TechnicianID:    technicianID,
		Status:          domain.StatusAwaitingApproval,
	}
	_ = repo.Create(context.Background(), item)
	return item
}

func TestApproveServiceWithTechnicianMovesToAssigned(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	techID := "tech-1"
	item := seedServiceRequest(repo, "community-1", &techID)
	dispatcher := events.NewInMemoryDispatcher()

	var approvals int
	dispatcher.Subscribe(events.EventServiceApproved, func(ctx context.Context, e events.Event) error {
		approvals++
		return nil
	})

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, dispatcher)
	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}

	updated, err := svc.ApproveService(context.Background(), owner, item.ID)

	require.NoError(t, err)
	assert.True(t, updated.ApprovedByOwner)
	assert.Equal(t, domain.StatusAssigned, updated.Status)
	assert.Equal(t, 1, approvals)
}

func TestApproveServiceWithoutTechnicianMovesToPending(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-1", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}

	updated, err := svc.ApproveService(context.Background(), owner, item.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, updated.Status)
}

func TestApproveServiceRequiresOwnerRole(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-1", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	resident := &domain.Resident{ID: "resident-1", Role: domain.RoleResident, CommunityID: "community-1"}

	_, err := svc.ApproveService(context.Background(), resident, item.ID)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestApproveServiceRejectsForeignCommunity(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-2", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}

	_, err := svc.ApproveService(context.Background(), owner, item.ID)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestApproveServiceRejectsIssues(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	issue := &domain.WorkItem{
		Kind:        domain.KindIssue,
		CommunityID: "community-1",
		Status:      domain.StatusPending,
	}
	_ = repo.Create(context.Background(), issue)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}

	_, err := svc.ApproveService(context.Background(), owner, issue.ID)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestApproveServiceRejectsDoubleApproval(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-1", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}

	_, err := svc.ApproveService(context.Background(), owner, item.ID)
	require.NoError(t, err)

	_, err = svc.ApproveService(context.Background(), owner, item.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestGetEnforcesVisibility(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-1", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)

	requester := &domain.Resident{ID: "resident-1", Role: domain.RoleResident, CommunityID: "community-1"}
	got, err := svc.Get(context.Background(), requester, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	stranger := &domain.Resident{ID: "resident-2", Role: domain.RoleResident, CommunityID: "community-1"}
	_, err = svc.Get(context.Background(), stranger, item.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)

	owner := &domain.Resident{ID: "owner-1", Role: domain.RoleOwner, CommunityID: "community-1"}
	_, err = svc.Get(context.Background(), owner, item.ID)
	assert.NoError(t, err)
}

func TestGetResolvesTicketNumbers(t *testing.T) {
	repo := &fakeWorkItemRepo{}
	item := seedServiceRequest(repo, "community-1", nil)

	svc := NewWorkItemService(repo, &fakeTechnicianRepo{}, nil)
	requester := &domain.Resident{ID: "resident-1", Role: domain.RoleResident, CommunityID: "community-1"}

	got, err := svc.Get(context.Background(), requester, "REQ-SEED0001")

	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
}

func TestGetUnknownItemIsNotFound(t *testing.T) {
	svc := NewWorkItemService(&fakeWorkItemRepo{}, &fakeTechnicianRepo{}, nil)
	resident := &domain.Resident{ID: "resident-1", Role: domain.RoleResident}

	_, err := svc.Get(context.Background(), resident, "missing")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
