package domain

import "time"

// ActivityType tags what happened to a deal.
type ActivityType string

const (
	ActivityCreated     ActivityType = "created"
	ActivityStageChange ActivityType = "stage_change"
	ActivityUpdated     ActivityType = "updated"
	ActivityMemoVersion ActivityType = "memo_version"
)

// Activity is an immutable log entry written as a side effect of a deal or memo mutation.
type Activity struct {
	ActivityID  int64        `json:"id"`
	DealID      int64        `json:"deal_id"`
	UserID      int64        `json:"user_id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}
