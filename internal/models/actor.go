package models

import "github.com/google/uuid"

// Actor is the authenticated caller of a request.
type Actor struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}

// CanManage reports whether the actor may administer the event: its owner
// or a platform admin.
func (a *Actor) CanManage(e *Event) bool {
	if a == nil || e == nil {
		return false
	}
	return a.IsAdmin || e.IsOwnedBy(a.UserID)
}
