package shared

import "github.com/google/uuid"

// Roles resolved from the auth token.
const (
	RoleUser          = "user"
	RoleBusinessOwner = "business_owner"
	RoleAdmin         = "admin"
)

// Actor is the authenticated caller of an operation. It is resolved once by
// the auth middleware and passed explicitly into every service call so no
// handler or service reads auth state from ambient request globals.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the given owner (nil owner matches nobody).
func (a Actor) Owns(ownerID *uuid.UUID) bool {
	return ownerID != nil && *ownerID == a.ID
}
