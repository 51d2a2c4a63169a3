// Package party models who is acting on a workflow resource. Authorization
// is an explicit capability check per operation (caller, resource,
// relationship) rather than a role hierarchy.
package party

import "github.com/google/uuid"

type Role string

const (
	RoleOrganizer Role = "organizer"
	RoleVendor    Role = "vendor"
	RoleAdmin     Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleOrganizer, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Initiator identifies who triggered a cancellation.
type Initiator string

const (
	InitiatorOrganizer Initiator = "organizer"
	InitiatorVendor    Initiator = "vendor"
	InitiatorAdmin     Initiator = "admin"
	InitiatorSystem    Initiator = "system"
)
