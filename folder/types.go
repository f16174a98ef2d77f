package folder

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Folder is a user-defined grouping container for coaches.
type Folder struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UserID     uuid.UUID `json:"userId"`
	IsArchived bool      `json:"isArchived"`
	Order      int       `json:"order"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (f *Folder) Validate() error {
	if f.Name == "" {
		return errors.New("name is required")
	}
	if f.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	return nil
}
