package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/events"
	"github.com/casaflow/community-service/internal/observability"
	"github.com/casaflow/community-service/internal/repository"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// SessionResolver maps an opaque voice-session key to the acting resident.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionKey string) (string, error)
}

// IntakeResult is the caller-facing outcome for both entry points.
type IntakeResult struct {
	Success            bool
	Message            string
	RequiresMoreInfo   bool
	Type               string // "issue", "service", or "validation_failed"
	TicketNumber       string
	Priority           domain.Priority
	AssignedTechnician string
	WorkItem           *domain.WorkItem
}

// IntakeService runs the normalize, validate, classify, match, persist
// pipeline for both the manual form and the voice webhook.
type IntakeService struct {
	residents  repository.ResidentRepository
	sessions   SessionResolver
	classifier *Classifier
	matcher    *TechnicianMatcher
	factory    *RequestFactory
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// IntakeDependencies bundles collaborators for the intake service.
type IntakeDependencies struct {
	ResidentRepo repository.ResidentRepository
	Sessions     SessionResolver
	Classifier   *Classifier
	Matcher      *TechnicianMatcher
	Factory      *RequestFactory
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// NewIntakeService constructs the service.
func NewIntakeService(deps IntakeDependencies) *IntakeService {
	return &IntakeService{
		residents:  deps.ResidentRepo,
		sessions:   deps.Sessions,
		classifier: deps.Classifier,
		matcher:    deps.Matcher,
		factory:    deps.Factory,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
}

// SubmitManualRequest runs the pipeline for an authenticated form submission.
func (s *IntakeService) SubmitManualRequest(ctx context.Context, resident *domain.Resident, form ManualForm) (*IntakeResult, error) {
	if resident == nil {
		return nil, apperrors.NewUnauthorized("resident required")
	}
	input := NormalizeManualForm(form)
	return s.run(ctx, resident, input, SourceManual, "")
}

// SubmitVoiceReport resolves the acting resident from the session key, then
// runs the pipeline on the call report.
func (s *IntakeService) SubmitVoiceReport(ctx context.Context, sessionKey string, report CallReport) (*IntakeResult, error) {
	residentID, err := s.sessions.Resolve(ctx, sessionKey)
	if err != nil {
		return nil, apperrors.NewUnauthorized("unknown or expired voice session")
	}
	resident, err := s.residents.GetByID(ctx, residentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("resident", map[string]any{"resident_id": residentID})
		}
		return nil, apperrors.MapError(err)
	}

	input := NormalizeCallReport(report)
	return s.run(ctx, resident, input, SourceVoice, report.FullConversation)
}

func (s *IntakeService) run(ctx context.Context, resident *domain.Resident, input RequestInput, source InputSource, transcript string) (*IntakeResult, error) {
	if verdict := Validate(input, source, transcript); !verdict.OK {
		s.metrics.RecordValidationReject()
		s.logger.Info("request rejected by sufficiency gate",
			zap.String("source", string(source)),
			zap.String("reason", verdict.Reason))
		return insufficientResult(verdict.Reason), nil
	}

	classification := s.classifier.Classify(ctx, input)
	if !classification.HasValidInformation {
		s.metrics.RecordValidationReject()
		return insufficientResult(classification.InsufficientReason), nil
	}

	technician, err := s.matcher.Match(ctx, resident.CommunityID, classification.RequiredSkill)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	item, err := s.factory.Create(ctx, classification, resident.ID, resident.CommunityID, input.Location, technician)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishCreated(ctx, item, resident.ID)
	if technician != nil {
		s.publishAssigned(ctx, item, technician)
	}

	s.logger.Info("work item created",
		zap.String("ticket_number", item.TicketNumber),
		zap.String("kind", string(item.Kind)),
		zap.String("priority", string(item.Priority)),
		zap.Bool("fallback_classification", classification.UsedFallback),
		zap.Bool("assigned", technician != nil))

	return successResult(item, technician), nil
}

func insufficientResult(reason string) *IntakeResult {
	if reason == "" {
		reason = "please provide more details about your request"
	}
	return &IntakeResult{
		Success:          false,
		Message:          reason,
		RequiresMoreInfo: true,
		Type:             "validation_failed",
	}
}

func successResult(item *domain.WorkItem, technician *domain.Technician) *IntakeResult {
	result := &IntakeResult{
		Success:      true,
		TicketNumber: item.TicketNumber,
		Priority:     item.Priority,
		WorkItem:     item,
	}

	technicianName := "will be assigned soon"
	if technician != nil {
		technicianName = technician.Name
	}
	result.AssignedTechnician = technicianName

	if item.IsIssue() {
		result.Type = "issue"
		if technician != nil {
			result.Message = fmt.Sprintf("Issue %s created and assigned to %s", item.TicketNumber, technician.Name)
		} else {
			result.Message = fmt.Sprintf("Issue %s created, a technician will be assigned soon", item.TicketNumber)
		}
	} else {
		result.Type = "service"
		result.Message = fmt.Sprintf("Service request %s created and awaiting owner approval", item.TicketNumber)
	}
	return result
}

func (s *IntakeService) publishCreated(ctx context.Context, item *domain.WorkItem, residentID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventWorkItemCreated, item.ID, residentID, events.WorkItemCreatedPayload{
		TicketNumber: item.TicketNumber,
		Kind:         item.Kind,
		Category:     item.Category(),
		Priority:     item.Priority,
		CommunityID:  item.CommunityID,
	}))
}

func (s *IntakeService) publishAssigned(ctx context.Context, item *domain.WorkItem, technician *domain.Technician) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventWorkItemAssigned, item.ID, item.RequesterID, events.WorkItemAssignedPayload{
		TicketNumber:   item.TicketNumber,
		TechnicianID:   technician.ID,
		TechnicianName: technician.Name,
	}))
}
