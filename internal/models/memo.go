package models

import "time"

// Memo is the row shape of the memos table joined with its current version.
type Memo struct {
	MemoID           int64      `db:"memo_id"`
	DealID           int64      `db:"deal_id"`
	CurrentVersionID *int64     `db:"current_version_id"`
	Content          *string    `db:"content"`
	VersionCreatedAt *time.Time `db:"version_created_at"`
}

// MemoVersion is the row shape of the memo_versions table.
type MemoVersion struct {
	MemoVersionID int64     `db:"memo_version_id"`
	MemoID        int64     `db:"memo_id"`
	Content       string    `db:"content"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     int64     `db:"created_by"`
}
