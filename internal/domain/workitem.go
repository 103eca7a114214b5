package domain

import "time"

// WorkItemKind discriminates the two work-item variants.
type WorkItemKind string

const (
	KindIssue          WorkItemKind = "ISSUE"
	KindServiceRequest WorkItemKind = "SERVICE_REQUEST"
)

// WorkItemStatus enumerates lifecycle states for work items.
type WorkItemStatus string

const (
	StatusPending          WorkItemStatus = "PENDING"
	StatusAssigned         WorkItemStatus = "ASSIGNED"
	StatusAwaitingApproval WorkItemStatus = "AWAITING_APPROVAL"
	StatusInProgress       WorkItemStatus = "IN_PROGRESS"
	StatusCompleted        WorkItemStatus = "COMPLETED"
	StatusCancelled        WorkItemStatus = "CANCELLED"
)

// OpenStatuses are the non-terminal states that count toward technician load.
func OpenStatuses() []WorkItemStatus {
	return []WorkItemStatus{StatusPending, StatusAssigned, StatusAwaitingApproval, StatusInProgress}
}

// Priority enumerates urgency levels, P1 critical/safety through P4 deferrable.
type Priority string

const (
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
	PriorityP4 Priority = "P4"
)

// Priorities lists all levels in rubric order.
func Priorities() []Priority {
	return []Priority{PriorityP1, PriorityP2, PriorityP3, PriorityP4}
}

// PriorityDescription returns the rubric line for a priority level.
func PriorityDescription(p Priority) string {
	switch p {
	case PriorityP1:
		return "critical or safety hazard, needs immediate attention"
	case PriorityP2:
		return "important, should be handled within a day"
	case PriorityP3:
		return "normal, minor inconvenience"
	case PriorityP4:
		return "low, can be deferred"
	default:
		return ""
	}
}

// ValidPriority reports whether p is a known level.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityP1, PriorityP2, PriorityP3, PriorityP4:
		return true
	}
	return false
}

// WorkItem is the aggregate for resident requests. The Kind field selects the
// variant: Issues track broken things, ServiceRequests track requested services
// and carry the owner-approval flag.
type WorkItem struct {
	ID              string
	TicketNumber    string
	Kind            WorkItemKind
	IssueCategory   IssueCategory   // set when Kind == KindIssue
	ServiceCategory ServiceCategory // set when Kind == KindServiceRequest
	Title           string
	Description     string
	Priority        Priority
	Location        string
	RequesterID     string
	CommunityID     string
	TechnicianID    *string
	Status          WorkItemStatus
	ApprovedByOwner bool // meaningful only for ServiceRequests
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsIssue reports whether the item is the Issue variant.
func (w *WorkItem) IsIssue() bool {
	return w.Kind == KindIssue
}

// Category returns the variant-appropriate category as a string.
func (w *WorkItem) Category() string {
	if w.IsIssue() {
		return string(w.IssueCategory)
	}
	return string(w.ServiceCategory)
}
