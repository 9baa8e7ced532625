// Package campsite provides the campsite domain model and data access.
package campsite

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a campsite does not exist.
var ErrNotFound = errors.New("campsite not found")

// Campsite is a directory entry shown on the campsite info page.
type Campsite struct {
	ID          int64     `json:"id" yaml:"-"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Image       string    `json:"image" yaml:"image"`
	Featured    bool      `json:"featured" yaml:"featured"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
}

// scanCampsite scans a campsite from a database row.
func scanCampsite(row interface{ Scan(...interface{}) error }) (*Campsite, error) {
	var c Campsite
	var featured int
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &featured, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Featured = featured != 0
	return &c, nil
}
