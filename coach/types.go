package coach

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Coordinates is the optional geocoded location of the client address.
type Coordinates struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type CoordinatesColumn struct {
	Coordinates *Coordinates
}

// Value implements driver.Valuer for INSERT/UPDATE.
func (c CoordinatesColumn) Value() (driver.Value, error) {
	if c.Coordinates == nil {
		return nil, nil
	}
	return json.Marshal(c.Coordinates)
}

// Scan implements sql.Scanner for SELECT.
func (c *CoordinatesColumn) Scan(value any) error {
	if value == nil {
		c.Coordinates = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("not a []byte: %T", value)
	}
	c.Coordinates = &Coordinates{}
	return json.Unmarshal(b, c.Coordinates)
}

// Coach is one client-intake record ("Company Coach").
type Coach struct {
	ID               uuid.UUID    `json:"id"`
	UserID           uuid.UUID    `json:"userId"`
	FolderID         *uuid.UUID   `json:"folderId"`
	CompanyName      string       `json:"companyName"`
	IDNumber         string       `json:"idNumber"`
	Website          string       `json:"website"`
	MainActivity     string       `json:"mainActivity"`
	SubActivities    string       `json:"subActivities"`
	FacebookURL      string       `json:"facebookUrl,omitempty"`
	InstagramURL     string       `json:"instagramUrl,omitempty"`
	LinkedinURL      string       `json:"linkedinUrl,omitempty"`
	LastGoogleReview string       `json:"lastGoogleReview,omitempty"`
	EmployeeCount    int          `json:"employeeCount"`
	SiteCount        int          `json:"siteCount"`
	DecisionMaker    string       `json:"decisionMaker"`
	ClientAddress    string       `json:"clientAddress"`
	ClientEmail      string       `json:"clientEmail"`
	Coordinates      *Coordinates `json:"coordinates,omitempty"`
	IsArchived       bool         `json:"isArchived"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

func (c *Coach) Validate() error {
	if c.CompanyName == "" {
		return errors.New("company name is required")
	}
	if c.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}
	if c.EmployeeCount < 0 {
		return errors.New("employee count must not be negative")
	}
	if c.SiteCount < 0 {
		return errors.New("site count must not be negative")
	}
	return nil
}
