package author

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
