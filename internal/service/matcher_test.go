package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/domain"
)

func TestMatchPicksLeastLoadedTechnician(t *testing.T) {
	repo := &fakeTechnicianRepo{loads: map[domain.TechnicianSkill][]domain.TechnicianLoad{
		domain.SkillPlumbing: {
			techLoad("tech-1", "Dana", domain.SkillPlumbing, 0, 2),
			techLoad("tech-2", "Omar", domain.SkillPlumbing, 1, 0),
		},
	}}
	matcher := NewTechnicianMatcher(repo, zap.NewNop())

	tech, err := matcher.Match(context.Background(), "community-1", domain.SkillPlumbing)

	require.NoError(t, err)
	require.NotNil(t, tech)
	assert.Equal(t, "tech-1", tech.ID)
}

func TestMatchRetriesWithGeneralMaintenance(t *testing.T) {
	repo := &fakeTechnicianRepo{loads: map[domain.TechnicianSkill][]domain.TechnicianLoad{
		domain.SkillGeneralMaintenance: {
			techLoad("tech-9", "Pat", domain.SkillGeneralMaintenance, 3, 1),
		},
	}}
	matcher := NewTechnicianMatcher(repo, zap.NewNop())

	tech, err := matcher.Match(context.Background(), "community-1", domain.SkillNetworking)

	require.NoError(t, err)
	require.NotNil(t, tech)
	assert.Equal(t, "tech-9", tech.ID)
	assert.Equal(t, []domain.TechnicianSkill{domain.SkillNetworking, domain.SkillGeneralMaintenance}, repo.listedSkill)
}

func TestMatchDoesNotRetryWhenSkillIsAlreadyGeneral(t *testing.T) {
	repo := &fakeTechnicianRepo{loads: map[domain.TechnicianSkill][]domain.TechnicianLoad{}}
	matcher := NewTechnicianMatcher(repo, zap.NewNop())

	tech, err := matcher.Match(context.Background(), "community-1", domain.SkillGeneralMaintenance)

	require.NoError(t, err)
	assert.Nil(t, tech)
	assert.Equal(t, []domain.TechnicianSkill{domain.SkillGeneralMaintenance}, repo.listedSkill)
}

func TestMatchReturnsNilWhenNobodyQualifies(t *testing.T) {
	repo := &fakeTechnicianRepo{loads: map[domain.TechnicianSkill][]domain.TechnicianLoad{}}
	matcher := NewTechnicianMatcher(repo, zap.NewNop())

	tech, err := matcher.Match(context.Background(), "community-1", domain.SkillPainting)

	require.NoError(t, err)
	assert.Nil(t, tech)
}

func TestMatchPropagatesRepositoryError(t *testing.T) {
	repo := &fakeTechnicianRepo{listErr: errors.New("pool closed")}
	matcher := NewTechnicianMatcher(repo, zap.NewNop())

	tech, err := matcher.Match(context.Background(), "community-1", domain.SkillPlumbing)

	assert.Error(t, err)
	assert.Nil(t, tech)
}
