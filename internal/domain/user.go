package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an app account backed by a federated Google identity.
type User struct {
	ID        uuid.UUID
	GoogleSub string
	Email     string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
