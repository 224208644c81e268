package auth

import (
	"github.com/google/uuid"

	"blogapi/internal/model"
)

// Principal is the authenticated identity for the duration of one request,
// derived from verified token claims. It is never persisted.
type Principal struct {
	ID   uuid.UUID
	Role model.Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == model.RoleAdmin
}

// CanModify reports whether the principal may mutate a resource owned by
// ownerID: admins may touch anything, others only their own resources.
func CanModify(ownerID uuid.UUID, p *Principal) bool {
	if p == nil {
		return false
	}
	return p.Role == model.RoleAdmin || p.ID == ownerID
}
