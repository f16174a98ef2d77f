package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"content-coach/auth"
	"content-coach/coach"
	"content-coach/user"
)

type coachRequest struct {
	CompanyName      string             `json:"companyName"`
	IDNumber         string             `json:"idNumber"`
	Website          string             `json:"website"`
	MainActivity     string             `json:"mainActivity"`
	SubActivities    string             `json:"subActivities"`
	FacebookURL      string             `json:"facebookUrl"`
	InstagramURL     string             `json:"instagramUrl"`
	LinkedinURL      string             `json:"linkedinUrl"`
	LastGoogleReview string             `json:"lastGoogleReview"`
	EmployeeCount    int                `json:"employeeCount"`
	SiteCount        int                `json:"siteCount"`
	DecisionMaker    string             `json:"decisionMaker"`
	ClientAddress    string             `json:"clientAddress"`
	ClientEmail      string             `json:"clientEmail"`
	Coordinates      *coach.Coordinates `json:"coordinates"`
}

func (r coachRequest) toCoach(ownerID uuid.UUID) coach.Coach {
	return coach.Coach{
		UserID:           ownerID,
		CompanyName:      r.CompanyName,
		IDNumber:         r.IDNumber,
		Website:          r.Website,
		MainActivity:     r.MainActivity,
		SubActivities:    r.SubActivities,
		FacebookURL:      r.FacebookURL,
		InstagramURL:     r.InstagramURL,
		LinkedinURL:      r.LinkedinURL,
		LastGoogleReview: r.LastGoogleReview,
		EmployeeCount:    r.EmployeeCount,
		SiteCount:        r.SiteCount,
		DecisionMaker:    r.DecisionMaker,
		ClientAddress:    r.ClientAddress,
		ClientEmail:      r.ClientEmail,
		Coordinates:      r.Coordinates,
	}
}

func (a *API) createCoach(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req coachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := req.toCoach(sess.UserID)
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	c, err := coachAccessor.CreateCoach(r.Context(), payload, a.now())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	// best effort; the coach is created either way
	if a.notifier != nil {
		if err := a.notifier.CoachCreated(r.Context(), *c, sess.Email); err != nil {
			log.Printf("coach created webhook: %v", err)
		}
	}

	a.Response(w, http.StatusCreated, c)
}

type getCoachesResponse struct {
	Coaches []coach.Coach `json:"coaches"`
}

func (a *API) getCoaches(w http.ResponseWriter, r *http.Request) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	coaches, err := coachAccessor.GetCoaches(r.Context(), sess.UserID)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, getCoachesResponse{Coaches: coaches})
}

// ownCoach loads the coach and enforces ownership, replying itself on
// failure. A nil return means the response has already been written.
func (a *API) ownCoach(w http.ResponseWriter, r *http.Request) (*coach.Coach, *auth.Session) {
	sess, err := auth.FromContext(r.Context())
	if err != nil {
		a.Response(w, http.StatusUnauthorized, "not authenticated")
		return nil, nil
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid coach ID")
		return nil, nil
	}

	coachAccessor := coach.NewAccessor(a.db)
	c, err := coachAccessor.GetCoach(r.Context(), id)
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return nil, nil
	}
	if c == nil || (c.UserID != sess.UserID && !sess.Can(user.ActionViewAllCoaches)) {
		a.Response(w, http.StatusNotFound, "coach not found")
		return nil, nil
	}
	return c, &sess
}

func (a *API) getCoach(w http.ResponseWriter, r *http.Request) {
	c, _ := a.ownCoach(w, r)
	if c == nil {
		return
	}
	a.Response(w, http.StatusOK, c)
}

func (a *API) updateCoach(w http.ResponseWriter, r *http.Request) {
	c, _ := a.ownCoach(w, r)
	if c == nil {
		return
	}

	var req coachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := req.toCoach(c.UserID)
	payload.ID = c.ID
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, fmt.Sprintf("validate: %v", err))
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	updated, err := coachAccessor.UpdateCoach(r.Context(), payload, a.now())
	if err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}

	a.Response(w, http.StatusOK, updated)
}

func (a *API) deleteCoach(w http.ResponseWriter, r *http.Request) {
	c, _ := a.ownCoach(w, r)
	if c == nil {
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	if err := coachAccessor.DeleteCoach(r.Context(), c.ID); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

type moveCoachRequest struct {
	// FolderID null or absent means the root area.
	FolderID *string `json:"folderId"`
}

func (a *API) moveCoach(w http.ResponseWriter, r *http.Request) {
	c, _ := a.ownCoach(w, r)
	if c == nil {
		return
	}

	var req moveCoachRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var folderID *uuid.UUID
	if req.FolderID != nil {
		parsed, err := uuid.Parse(*req.FolderID)
		if err != nil {
			a.Response(w, http.StatusBadRequest, "invalid folder ID")
			return
		}
		folderID = &parsed
	}

	coachAccessor := coach.NewAccessor(a.db)
	if err := coachAccessor.MoveCoach(r.Context(), c.ID, folderID, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}

func (a *API) archiveCoach(w http.ResponseWriter, r *http.Request) {
	c, _ := a.ownCoach(w, r)
	if c == nil {
		return
	}

	coachAccessor := coach.NewAccessor(a.db)
	if err := coachAccessor.SetArchived(r.Context(), c.ID, !c.IsArchived, a.now()); err != nil {
		a.Response(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.Response(w, http.StatusNoContent, nil)
}
