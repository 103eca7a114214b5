package domain

import "time"

// ResidentRole separates ordinary residents from the community owner.
type ResidentRole string

const (
	RoleResident ResidentRole = "RESIDENT"
	RoleOwner    ResidentRole = "OWNER"
)

// Resident is the domain model for people who submit requests. Owners manage
// technicians and approve service requests through out-of-band screens.
type Resident struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         ResidentRole
	CommunityID  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Community groups residents and technician assignments.
type Community struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
}
