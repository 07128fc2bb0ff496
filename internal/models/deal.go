package models

import "github.com/shopspring/decimal"

// Deal is the row shape of the deals table.
type Deal struct {
	DealID     int64               `db:"deal_id"`
	Name       string              `db:"name"`
	CompanyURL *string             `db:"company_url"`
	OwnerID    *int64              `db:"owner_id"`
	Stage      string              `db:"stage"`
	Round      *string             `db:"round"`
	CheckSize  decimal.NullDecimal `db:"check_size"`
	Status     string              `db:"status"`
	AuditFields
}
