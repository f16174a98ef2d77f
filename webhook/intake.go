package webhook

import (
	"errors"

	"content-coach/coach"
)

// Survey answer field IDs as configured in the intake form. The submission
// payload identifies answers by these opaque IDs, not by name.
const (
	fieldUserEmail        = "2oxfFVXylEq1"
	fieldCompanyName      = "twAYALYJdmWu"
	fieldIDNumber         = "Ms5BZcJfYqxL"
	fieldWebsite          = "SwVlWGENdyAo"
	fieldMainActivity     = "fr5PNJaHWR0i"
	fieldSubActivities    = "HUFPSHdeMR45"
	fieldEmployeeCount    = "eVRfKuH4Tkyu"
	fieldSiteCount        = "6b1IWkc2p3u2"
	fieldDecisionMaker    = "wO8aAFBXzS0A"
	fieldClientAddress    = "4n79svw4nnda"
	fieldClientEmail      = "1odBCJQla32d"
	fieldFacebookURL      = "facebookUrlFieldId"
	fieldInstagramURL     = "instagramUrlFieldId"
	fieldLinkedinURL      = "linkedinUrlFieldId"
	fieldLastGoogleReview = "lastGoogleReviewFieldId"
)

var ErrNoUserEmail = errors.New("user email answer not found")

// IntakePayload is the survey provider's form-submission webhook body.
type IntakePayload struct {
	FormResponse struct {
		Answers []IntakeAnswer `json:"answers"`
	} `json:"form_response"`
}

type IntakeAnswer struct {
	Field struct {
		ID string `json:"id"`
	} `json:"field"`
	Text   string  `json:"text,omitempty"`
	Number float64 `json:"number,omitempty"`
	Email  string  `json:"email,omitempty"`
	URL    string  `json:"url,omitempty"`
}

func (p *IntakePayload) answer(fieldID string) *IntakeAnswer {
	for i := range p.FormResponse.Answers {
		if p.FormResponse.Answers[i].Field.ID == fieldID {
			return &p.FormResponse.Answers[i]
		}
	}
	return nil
}

func (p *IntakePayload) text(fieldID string) string {
	a := p.answer(fieldID)
	if a == nil {
		return ""
	}
	if a.Text != "" {
		return a.Text
	}
	if a.Email != "" {
		return a.Email
	}
	return a.URL
}

func (p *IntakePayload) number(fieldID string) int {
	a := p.answer(fieldID)
	if a == nil {
		return 0
	}
	return int(a.Number)
}

// SubmitterEmail returns the email the submitting user identified
// themselves with.
func (p *IntakePayload) SubmitterEmail() (string, error) {
	a := p.answer(fieldUserEmail)
	if a == nil || a.Email == "" {
		return "", ErrNoUserEmail
	}
	return a.Email, nil
}

// MapToCoach translates the answer set into a coach record. The owner is
// resolved separately from SubmitterEmail and filled in by the caller.
func (p *IntakePayload) MapToCoach() coach.Coach {
	return coach.Coach{
		CompanyName:      p.text(fieldCompanyName),
		IDNumber:         p.text(fieldIDNumber),
		Website:          p.text(fieldWebsite),
		MainActivity:     p.text(fieldMainActivity),
		SubActivities:    p.text(fieldSubActivities),
		FacebookURL:      p.text(fieldFacebookURL),
		InstagramURL:     p.text(fieldInstagramURL),
		LinkedinURL:      p.text(fieldLinkedinURL),
		LastGoogleReview: p.text(fieldLastGoogleReview),
		EmployeeCount:    p.number(fieldEmployeeCount),
		SiteCount:        p.number(fieldSiteCount),
		DecisionMaker:    p.text(fieldDecisionMaker),
		ClientAddress:    p.text(fieldClientAddress),
		ClientEmail:      p.text(fieldClientEmail),
	}
}
