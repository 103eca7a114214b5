package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/casaflow/community-service/internal/api/dto"
	"github.com/casaflow/community-service/internal/auth"
	"github.com/casaflow/community-service/internal/domain"
	"github.com/casaflow/community-service/internal/service"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// RequestsHandler exposes the two intake entry points.
type RequestsHandler struct {
	intake *service.IntakeService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(intake *service.IntakeService) *RequestsHandler {
	return &RequestsHandler{intake: intake}
}

// SubmitRequest POST /requests (authenticated manual form).
func (h *RequestsHandler) SubmitRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Resident == nil {
		return apperrors.NewUnauthorized("resident required")
	}
	var req dto.ManualRequestPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.intake.SubmitManualRequest(c.Context(), principal.Resident, service.ManualForm{
		IssueDescription: req.IssueDescription,
		IssueLocation:    req.IssueLocation,
		IssueType:        req.IssueType,
		ServiceDetails:   req.ServiceDetails,
	})
	if err != nil {
		return err
	}
	return writeIntakeResult(c, result)
}

// SubmitVoiceReport POST /voice/report (telephony webhook with session key).
func (h *RequestsHandler) SubmitVoiceReport(c *fiber.Ctx) error {
	var req dto.VoiceReportPayload
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SessionKey == "" {
		return apperrors.NewUnauthorized("session_key required")
	}

	result, err := h.intake.SubmitVoiceReport(c.Context(), req.SessionKey, service.CallReport{
		Summary: req.Summary,
		ExtractedVariables: service.ExtractedVariables{
			IssueDescription: req.ExtractedVariables.IssueDescription,
			IssueLocation:    req.ExtractedVariables.IssueLocation,
			IssueType:        req.ExtractedVariables.IssueType,
			ServiceDetails:   req.ExtractedVariables.ServiceDetails,
		},
		FullConversation: req.FullConversation,
	})
	if err != nil {
		return err
	}
	return writeIntakeResult(c, result)
}

func writeIntakeResult(c *fiber.Ctx, result *service.IntakeResult) error {
	resp := dto.IntakeResponse{
		Success:            result.Success,
		Message:            result.Message,
		Type:               result.Type,
		RequiresMoreInfo:   result.RequiresMoreInfo,
		TicketNumber:       result.TicketNumber,
		Priority:           result.Priority,
		AssignedTechnician: result.AssignedTechnician,
	}
	if result.WorkItem != nil {
		item := workItemResponse(result.WorkItem)
		resp.Data = &item
	}

	status := http.StatusOK
	if result.Success {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

func workItemResponse(item *domain.WorkItem) dto.WorkItemResponse {
	return dto.WorkItemResponse{
		ID:              item.ID,
		TicketNumber:    item.TicketNumber,
		Kind:            item.Kind,
		Category:        item.Category(),
		Title:           item.Title,
		Description:     item.Description,
		Priority:        item.Priority,
		Location:        item.Location,
		Status:          item.Status,
		TechnicianID:    item.TechnicianID,
		ApprovedByOwner: item.ApprovedByOwner,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
