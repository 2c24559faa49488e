package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticatable account belonging to one tenant.
type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
