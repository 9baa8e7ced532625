// Package comment provides the campsite comment domain model and data access.
package comment

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a comment does not exist.
var ErrNotFound = errors.New("comment not found")

// Comment is a rated note left on a campsite.
type Comment struct {
	ID         int64     `json:"id"`
	CampsiteID int64     `json:"campsite_id"`
	Rating     int       `json:"rating"`
	Author     string    `json:"author"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}
