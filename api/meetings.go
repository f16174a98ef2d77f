package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"content-coach/auth"
	"content-coach/coach"
	"content-coach/meeting"
	"content-coach/user"
)

// createMeetingRequest is the API DTO; timestamps are RFC3339 strings.
type createMeetingRequest struct {
	CoachID   string   `json:"coachId"`
	Title     string   `json:"title"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	Agenda    string   `json:"agenda"`
	Attendees []string `json:"attendees"`
}

func (a *API) createMeeting(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	coachID, err := uuid.Parse(req.CoachID)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid coach ID")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid start time")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid end time")
		return
	}

	payload := meeting.Meeting{
		CoachID:   coachID,
		Title:     req.Title,
		StartTime: start,
		EndTime:   end,
		Agenda:    req.Agenda,
		Attendees: req.Attendees,
	}

	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	meetingAccessor := meeting.NewAccessor(a.db, coach.NewAccessor(a.db))
	m, err := meetingAccessor.CreateMeeting(r.Context(), sess.UserID, payload, a.now())
	switch {
	case errors.Is(err, meeting.ErrConflict):
		a.Response(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, meeting.ErrCoachNotFound):
		a.Response(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusCreated, m)
}

type getMeetingsResponse struct {
	Meetings []meeting.Meeting `json:"meetings"`
}

// getMeetings returns the caller's whole schedule: every meeting under every
// coach they own.
func (a *API) getMeetings(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	meetingAccessor := meeting.NewAccessor(a.db, coach.NewAccessor(a.db))
	meetings, err := meetingAccessor.GetMeetingsForOwner(r.Context(), sess.UserID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, getMeetingsResponse{Meetings: meetings})
}

func (a *API) getMeeting(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid meeting ID")
		return
	}

	meetingAccessor := meeting.NewAccessor(a.db, coach.NewAccessor(a.db))
	m, err := meetingAccessor.GetMeeting(r.Context(), id)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if m == nil {
		a.Response(w, http.StatusNotFound, "meeting not found")
		return
	}

	// ownership check via the coach; a 404 hides other users' meetings
	coachAccessor := coach.NewAccessor(a.db)
	c, err := coachAccessor.GetCoach(r.Context(), m.CoachID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil || (c.UserID != sess.UserID && !sess.Can(user.ActionViewAllCoaches)) {
		a.Response(w, http.StatusNotFound, "meeting not found")
		return
	}

	a.Response(w, http.StatusOK, m)
}

func (a *API) getCoachMeetings(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	coachID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid coach ID")
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	c, err := coachAccessor.GetCoach(r.Context(), coachID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil || (c.UserID != sess.UserID && !sess.Can(user.ActionViewAllCoaches)) {
		a.Response(w, http.StatusNotFound, "coach not found")
		return
	}

	meetingAccessor := meeting.NewAccessor(a.db, coachAccessor)
	meetings, err := meetingAccessor.GetMeetingsForCoach(r.Context(), coachID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, getMeetingsResponse{Meetings: meetings})
}
