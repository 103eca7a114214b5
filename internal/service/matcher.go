package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/repository"
)

// TechnicianMatcher selects the least-loaded eligible technician for a
// community and skill, with GENERAL_MAINTENANCE as the catch-all retry.
type TechnicianMatcher struct {
	technicians repository.TechnicianRepository
	logger      *zap.Logger
}

// NewTechnicianMatcher constructs the matcher.
func NewTechnicianMatcher(technicians repository.TechnicianRepository, logger *zap.Logger) *TechnicianMatcher {
	return &TechnicianMatcher{technicians: technicians, logger: logger}
}

// Match returns the winning technician or nil when none qualifies. A nil
// result is a valid state, not an error: the work item is created unassigned.
//
// Load counts are read live at match time. Two concurrent requests can both
// observe the same least-loaded technician and both select them; that window
// is accepted rather than closed with a transaction.
func (m *TechnicianMatcher) Match(ctx context.Context, communityID string, skill domain.TechnicianSkill) (*domain.Technician, error) {
	tech, err := m.matchSkill(ctx, communityID, skill)
	if err != nil {
		return nil, err
	}
	if tech != nil {
		return tech, nil
	}

	if skill != domain.SkillGeneralMaintenance {
		tech, err = m.matchSkill(ctx, communityID, domain.SkillGeneralMaintenance)
		if err != nil {
			return nil, err
		}
		if tech != nil {
			m.logger.Debug("matched generic technician",
				zap.String("community_id", communityID),
				zap.String("requested_skill", string(skill)))
			return tech, nil
		}
	}

	m.logger.Info("no technician available",
		zap.String("community_id", communityID),
		zap.String("skill", string(skill)))
	return nil, nil
}

func (m *TechnicianMatcher) matchSkill(ctx context.Context, communityID string, skill domain.TechnicianSkill) (*domain.Technician, error) {
	loads, err := m.technicians.ListEligible(ctx, communityID, skill)
	if err != nil {
		return nil, err
	}
	if len(loads) == 0 {
		return nil, nil
	}
	// Repository orders by ascending open-issue count then open-service count.
	winner := loads[0].Technician
	m.logger.Debug("technician selected",
		zap.String("technician_id", winner.ID),
		zap.String("skill", string(skill)),
		zap.Int("active_load", loads[0].ActiveLoad()))
	return &winner, nil
}
