package rbac

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Grant authorizes a principal to perform a set of actions on a named
// resource. A principal holds at most one grant per resource; the database
// enforces the uniqueness.
type Grant struct {
	PrincipalID uuid.UUID
	Resource    string
	Actions     []string
	Description string
	UpdatedAt   time.Time
}

// Allows reports whether the grant covers the action.
func (g Grant) Allows(action string) bool {
	for _, a := range g.Actions {
		if strings.EqualFold(a, action) {
			return true
		}
	}
	return false
}
