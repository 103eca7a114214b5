package domain

import "time"

// Technician models a service provider with one skill specialty. A technician
// may serve several communities; assignments are stored in a join table.
type Technician struct {
	ID           string
	Name         string
	Phone        string
	Skill        TechnicianSkill
	Available    bool
	CommunityIDs []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TechnicianLoad pairs a technician with their current open-assignment counts.
// Load is derived at query time, never stored.
type TechnicianLoad struct {
	Technician   Technician
	OpenIssues   int
	OpenServices int
}

// ActiveLoad is the total number of open assignments.
func (t TechnicianLoad) ActiveLoad() int {
	return t.OpenIssues + t.OpenServices
}
