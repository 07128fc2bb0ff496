package models

import "time"

// Activity is the row shape of the activities table.
type Activity struct {
	ActivityID   int64     `db:"activity_id"`
	DealID       int64     `db:"deal_id"`
	UserID       int64     `db:"user_id"`
	ActivityType string    `db:"activity_type"`
	Description  string    `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
}
