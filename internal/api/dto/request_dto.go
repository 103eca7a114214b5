package dto

import (
	"time"

	"github.com/casaflow/community-service/internal/domain"
)

// ManualRequestPayload is the authenticated form submission.
type ManualRequestPayload struct {
	IssueDescription string `json:"issue_description"`
	IssueLocation    string `json:"issue_location"`
	IssueType        string `json:"issue_type"`
	ServiceDetails   string `json:"service_details"`
}

// VoiceReportPayload is the telephony webhook body.
type VoiceReportPayload struct {
	SessionKey         string                `json:"session_key"`
	Summary            string                `json:"summary"`
	ExtractedVariables ExtractedVariablesDTO `json:"extracted_variables"`
	FullConversation   string                `json:"full_conversation"`
}

// ExtractedVariablesDTO mirrors the call-report structured fields.
type ExtractedVariablesDTO struct {
	IssueDescription string `json:"issue_description"`
	IssueLocation    string `json:"issue_location"`
	IssueType        string `json:"issue_type"`
	ServiceDetails   string `json:"service_details"`
}

// IntakeResponse is the shared caller-facing pipeline result.
type IntakeResponse struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message"`
	Type               string            `json:"type"`
	RequiresMoreInfo   bool              `json:"requiresMoreInfo,omitempty"`
	TicketNumber       string            `json:"ticketNumber,omitempty"`
	Priority           domain.Priority   `json:"priority,omitempty"`
	AssignedTechnician string            `json:"assignedTechnician,omitempty"`
	Data               *WorkItemResponse `json:"data,omitempty"`
}

// WorkItemResponse represents a persisted work item.
type WorkItemResponse struct {
	ID              string                `json:"id"`
	TicketNumber    string                `json:"ticket_number"`
	Kind            domain.WorkItemKind   `json:"kind"`
	Category        string                `json:"category"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Priority        domain.Priority       `json:"priority"`
	Location        string                `json:"location"`
	Status          domain.WorkItemStatus `json:"status"`
	TechnicianID    *string               `json:"technician_id,omitempty"`
	TechnicianName  string                `json:"technician_name,omitempty"`
	ApprovedByOwner bool                  `json:"approved_by_owner"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}
