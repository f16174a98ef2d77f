// Package apikey stores third-party API keys, one row per external service.
package apikey

import "database/sql"

type Accessor struct {
	db *sql.DB
}

func NewAccessor(db *sql.DB) *Accessor {
	return &Accessor{db: db}
}
