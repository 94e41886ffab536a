// Package access decides which routines a caller may see or change.
//
// Every read and mutation path in the service layer goes through these
// predicates, so the active filter and the ownership rules live in one place.
package access

import (
	"github.com/ahmetcoskunkizilkaya/vardforalla-backend/internal/models"
	"github.com/google/uuid"
)

// Caller identifies who is asking. A zero UserID means no caller is set
// (system context) and is treated like an administrator.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func System() Caller {
	return Caller{}
}

// Unrestricted reports whether ownership checks are skipped for the caller.
func (c Caller) Unrestricted() bool {
	return c.IsAdmin || c.UserID == uuid.Nil
}

// CanAccess reports read access. It ignores IsActive.
func CanAccess(r *models.Routine, c Caller) bool {
	if r == nil {
		return false
	}
	if c.Unrestricted() {
		return true
	}
	return r.OwnedBy(c.UserID) || r.IsTemplate
}

// CanMutate requires an active routine and ownership. Templates are
// read-only for everyone except their owner and administrators.
func CanMutate(r *models.Routine, c Caller) bool {
	if r == nil || !r.IsActive {
		return false
	}
	return c.Unrestricted() || r.OwnedBy(c.UserID)
}

// ListVisible keeps active routines the caller owns, plus templates when
// includeTemplates is set. Unrestricted callers see every active routine.
func ListVisible(routines []models.Routine, c Caller, includeTemplates bool) []models.Routine {
	visible := make([]models.Routine, 0, len(routines))
	for i := range routines {
		r := &routines[i]
		if !r.IsActive {
			continue
		}
		if c.Unrestricted() || r.OwnedBy(c.UserID) || (includeTemplates && r.IsTemplate) {
			visible = append(visible, *r)
		}
	}
	return visible
}

// Visible is the single-routine read check. Absent and hidden routines are
// indistinguishable to the caller.
func Visible(r *models.Routine, c Caller) bool {
	return CanAccess(r, c)
}
