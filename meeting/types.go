package meeting

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AttendeesColumn []string

// Value implements driver.Valuer for INSERT/UPDATE.
func (a AttendeesColumn) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for SELECT.
func (a *AttendeesColumn) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("not a []byte: %T", value)
	}
	return json.Unmarshal(b, a)
}

// Meeting is a scheduled time interval tied to one coach. Meetings are
// created and read, never edited or deleted.
type Meeting struct {
	ID        uuid.UUID `json:"id"`
	CoachID   uuid.UUID `json:"coachId"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Agenda    string    `json:"agenda"`
	Attendees []string  `json:"attendees"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Meeting) Validate() error {
	if m.CoachID == uuid.Nil {
		return errors.New("coach ID is required")
	}
	if m.Title == "" {
		return errors.New("title is required")
	}
	if m.Agenda == "" {
		return errors.New("agenda is required")
	}
	if m.StartTime.IsZero() {
		return errors.New("start time is required")
	}
	if m.EndTime.IsZero() {
		return errors.New("end time is required")
	}
	if !m.EndTime.After(m.StartTime) {
		return errors.New("end time must be after start time")
	}
	return nil
}
