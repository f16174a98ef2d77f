package meeting

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"content-coach/coach"
)

// CoachDirectory is the slice of the coach accessor the scheduler needs.
type CoachDirectory interface {
	GetCoach(ctx context.Context, id uuid.UUID) (*coach.Coach, error)
	GetCoachIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

type Accessor struct {
	db      *sql.DB
	coaches CoachDirectory
}

func NewAccessor(db *sql.DB, coaches CoachDirectory) *Accessor {
	return &Accessor{
		db:      db,
		coaches: coaches,
	}
}
