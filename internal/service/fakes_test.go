package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/repository"
)

type fakeTechnicianRepo struct {
	loads       map[domain.TechnicianSkill][]domain.TechnicianLoad
	listErr     error
	listedSkill []domain.TechnicianSkill
}

func (f *fakeTechnicianRepo) Create(ctx context.Context, tech *domain.Technician) error {
	tech.ID = uuid.NewString()
	return nil
}

func (f *fakeTechnicianRepo) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	for _, loads := range f.loads {
		for _, load := range loads {
			if load.Technician.ID == id {
				tech := load.Technician
				return &tech, nil
			}
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTechnicianRepo) ListEligible(ctx context.Context, communityID string, skill domain.TechnicianSkill) ([]domain.TechnicianLoad, error) {
	f.listedSkill = append(f.listedSkill, skill)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.loads[skill], nil
}

func (f *fakeTechnicianRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	return nil
}

type fakeWorkItemRepo struct {
	mu        sync.Mutex
	created   []*domain.WorkItem
	createErr error
}

func (f *fakeWorkItemRepo) Create(ctx context.Context, item *domain.WorkItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	item.ID = uuid.NewString()
	f.created = append(f.created, item)
	return nil
}

func (f *fakeWorkItemRepo) Update(ctx context.Context, item *domain.WorkItem) error {
	return nil
}

func (f *fakeWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.created {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkItemRepo) GetByTicketNumber(ctx context.Context, ticketNumber string) (*domain.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.created {
		if item.TicketNumber == ticketNumber {
			return item, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeWorkItemRepo) ListWithFilter(ctx context.Context, filter repository.WorkItemFilter) ([]domain.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]domain.WorkItem, 0, len(f.created))
	for _, item := range f.created {
		items = append(items, *item)
	}
	return items, nil
}

type fakeResidentRepo struct {
	residents map[string]*domain.Resident
}

func (f *fakeResidentRepo) Create(ctx context.Context, resident *domain.Resident) error {
	resident.ID = uuid.NewString()
	if f.residents == nil {
		f.residents = map[string]*domain.Resident{}
	}
	f.residents[resident.ID] = resident
	return nil
}

func (f *fakeResidentRepo) Update(ctx context.Context, resident *domain.Resident) error {
	f.residents[resident.ID] = resident
	return nil
}

func (f *fakeResidentRepo) GetByID(ctx context.Context, id string) (*domain.Resident, error) {
	if resident, ok := f.residents[id]; ok {
		return resident, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResidentRepo) GetByEmail(ctx context.Context, email string) (*domain.Resident, error) {
	for _, resident := range f.residents {
		if resident.Email == email {
			return resident, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeSessionResolver struct {
	sessions map[string]string
}

func (f *fakeSessionResolver) Resolve(ctx context.Context, sessionKey string) (string, error) {
	if residentID, ok := f.sessions[sessionKey]; ok {
		return residentID, nil
	}
	return "", pgx.ErrNoRows
}

func techLoad(id, name string, skill domain.TechnicianSkill, openIssues, openServices int) domain.TechnicianLoad {
	return domain.TechnicianLoad{
		Technician: domain.Technician{
			ID:        id,
			Name:      name,
			Skill:     skill,
			Available: true,
		},
		OpenIssues:   openIssues,
		OpenServices: openServices,
	}
}
