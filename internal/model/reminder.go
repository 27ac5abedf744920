package model

import "time"

// Reminder is a scheduled to-do, optionally linked to a planned expense record.
type Reminder struct {
	RemindAt        time.Time
	CreatedAt       time.Time
	ID              string
	Title           string
	RelatedRecordID string
	Completed       bool
}
