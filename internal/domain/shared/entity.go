package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity provides identity and audit timestamps for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity creates a BaseEntity with a fresh ID and timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the entity's last-modified timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
