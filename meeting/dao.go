package meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrConflict is returned when the candidate interval overlaps an existing
// meeting for the same owner.
var ErrConflict = errors.New("meeting time conflicts with an existing meeting")

// ErrCoachNotFound is returned when the referenced coach does not exist or
// does not belong to the caller.
var ErrCoachNotFound = errors.New("coach not found")

// CreateMeeting books a meeting for one of ownerID's coaches. It loads the
// owner's whole schedule (every meeting under every coach they own), refuses
// the booking on overlap and persists otherwise.
//
// The check-then-insert pair is not guarded by a lock or constraint, so two
// near-simultaneous requests for the same slot can both pass the check.
// Single-editor-per-account usage makes that acceptable here.
func (a *Accessor) CreateMeeting(ctx context.Context, ownerID uuid.UUID, m Meeting, now time.Time) (*Meeting, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	c, err := a.coaches.GetCoach(ctx, m.CoachID)
	if err != nil {
		return nil, fmt.Errorf("get coach: %w", err)
	}
	if c == nil || c.UserID != ownerID {
		return nil, ErrCoachNotFound
	}

	existing, err := a.GetMeetingsForOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	if HasConflict(m.StartTime, m.EndTime, existing) {
		return nil, ErrConflict
	}

	id := uuid.New()

	query := `INSERT INTO meetings (id, coach_id, title, agenda, start_time, end_time, attendees, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`
	if _, err := a.db.ExecContext(ctx, query, id, m.CoachID, m.Title, m.Agenda, m.StartTime, m.EndTime, AttendeesColumn(m.Attendees), now); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	m.ID = id
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	m.CreatedAt = now
	m.UpdatedAt = now
	return &m, nil
}

func (a *Accessor) GetMeeting(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	var m Meeting
	var attendees AttendeesColumn

	query := `SELECT id, coach_id, title, agenda, start_time, end_time, attendees, created_at, updated_at FROM meetings WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&m.ID, &m.CoachID, &m.Title, &m.Agenda, &m.StartTime, &m.EndTime, &attendees, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	m.Attendees = []string(attendees)

	return &m, nil
}

// GetMeetingsForCoach returns the meetings booked under a single coach.
func (a *Accessor) GetMeetingsForCoach(ctx context.Context, coachID uuid.UUID) ([]Meeting, error) {
	query := `SELECT id, coach_id, title, agenda, start_time, end_time, attendees, created_at, updated_at FROM meetings WHERE coach_id = $1 ORDER BY start_time`
	return a.queryMeetings(ctx, query, coachID)
}

// GetMeetingsForOwner collects the meetings under every coach the owner has.
func (a *Accessor) GetMeetingsForOwner(ctx context.Context, ownerID uuid.UUID) ([]Meeting, error) {
	coachIDs, err := a.coaches.GetCoachIDs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get coach ids: %w", err)
	}
	if len(coachIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(coachIDs))
	for i, id := range coachIDs {
		ids[i] = id.String()
	}

	query := `SELECT id, coach_id, title, agenda, start_time, end_time, attendees, created_at, updated_at FROM meetings WHERE coach_id = ANY($1) ORDER BY start_time`
	return a.queryMeetings(ctx, query, pq.Array(ids))
}

func (a *Accessor) queryMeetings(ctx context.Context, query string, args ...any) ([]Meeting, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var meetings []Meeting
	for rows.Next() {
		var m Meeting
		var attendees AttendeesColumn
		if err := rows.Scan(&m.ID, &m.CoachID, &m.Title, &m.Agenda, &m.StartTime, &m.EndTime, &attendees, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		m.Attendees = []string(attendees)
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}
