package genre

import (
	"time"

	"github.com/google/uuid"
)

type Genre struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
