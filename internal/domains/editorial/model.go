package editorial

import (
	"time"

	"github.com/google/uuid"
)

type Editorial struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
