package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"content-coach/coach"
	"content-coach/user"
	"content-coach/webhook"
)

// intakeWebhook receives a survey form submission, resolves the submitting
// user by their email answer and files the mapped coach record under them.
func (a *API) intakeWebhook(w http.ResponseWriter, r *http.Request) {
	var payload webhook.IntakePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email, err := payload.SubmitterEmail()
	if errors.Is(err, webhook.ErrNoUserEmail) {
		a.Response(w, http.StatusBadRequest, err.Error())
		return
	}

	userAccessor := user.NewAccessor(a.db)
	u, err := userAccessor.GetUserByEmail(r.Context(), email)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "no user for submitted email")
		return
	}

	c := payload.MapToCoach()
	c.UserID = u.ID
	if err := c.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	created, err := coachAccessor.CreateCoach(r.Context(), c, a.now())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, map[string]any{
		"message": "form processed successfully",
		"coachId": created.ID.String(),
	})
}
