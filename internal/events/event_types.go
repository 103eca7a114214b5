package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/casaflow/community-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventWorkItemCreated  EventType = "work_item_created"
	EventWorkItemAssigned EventType = "work_item_assigned"
	EventServiceApproved  EventType = "service_request_approved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	WorkItemID string      `json:"work_item_id"`
	ActorID    string      `json:"actor_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// NewEvent builds a stamped event.
func NewEvent(eventType EventType, workItemID, actorID string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		WorkItemID: workItemID,
		ActorID:    actorID,
		Timestamp:  time.Now(),
		Payload:    payload,
	}
}

// WorkItemCreatedPayload payload.
type WorkItemCreatedPayload struct {
	TicketNumber string              `json:"ticket_number"`
	Kind         domain.WorkItemKind `json:"kind"`
	Category     string              `json:"category"`
	Priority     domain.Priority     `json:"priority"`
	CommunityID  string              `json:"community_id"`
}

// WorkItemAssignedPayload payload.
type WorkItemAssignedPayload struct {
	TicketNumber   string `json:"ticket_number"`
	TechnicianID   string `json:"technician_id"`
	TechnicianName string `json:"technician_name"`
}

// ServiceApprovedPayload payload.
type ServiceApprovedPayload struct {
	TicketNumber string                `json:"ticket_number"`
	NewStatus    domain.WorkItemStatus `json:"new_status"`
}
