package dto

import (
	"time"

	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDealRequest defines the data needed to create a new deal.
// Stage and status are not accepted: new deals always start Sourced and active.
type CreateDealRequest struct {
	Name       string           `json:"name" binding:"required,max=255"`
	CompanyURL *string          `json:"company_url,omitempty" binding:"omitempty,max=2048"`
	Round      *string          `json:"round,omitempty" binding:"omitempty,max=64"`
	CheckSize  *decimal.Decimal `json:"check_size,omitempty"`
	OwnerID    *int64           `json:"owner_id,omitempty"`
}

// UpdateDealRequest defines the data allowed for updating a deal.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateDealRequest struct {
	Name       *string           `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	CompanyURL *string           `json:"company_url,omitempty" binding:"omitempty,max=2048"`
	Stage      *domain.DealStage `json:"stage,omitempty" binding:"omitempty,oneof=Sourced Screen Diligence IC Invested Passed"`
	Round      *string           `json:"round,omitempty" binding:"omitempty,max=64"`
	CheckSize  *decimal.Decimal  `json:"check_size,omitempty"`
	Status     *string           `json:"status,omitempty" binding:"omitempty,min=1,max=32"`
	OwnerID    *int64            `json:"owner_id,omitempty"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateDealRequest) IsEmpty() bool {
	return r == UpdateDealRequest{}
}

// DealResponse defines the data returned for a deal.
// Mirrors domain.Deal.
type DealResponse struct {
	DealID     int64            `json:"id"`
	Name       string           `json:"name"`
	CompanyURL *string          `json:"company_url"`
	Stage      domain.DealStage `json:"stage"`
	Round      *string          `json:"round"`
	CheckSize  *decimal.Decimal `json:"check_size"`
	Status     string           `json:"status"`
	OwnerID    *int64           `json:"owner_id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToDealResponse converts a domain.Deal to DealResponse DTO
func ToDealResponse(d *domain.Deal) DealResponse {
	return DealResponse{
		DealID:     d.DealID,
		Name:       d.Name,
		CompanyURL: d.CompanyURL,
		Stage:      d.Stage,
		Round:      d.Round,
		CheckSize:  d.CheckSize,
		Status:     d.Status,
		OwnerID:    d.OwnerID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToListDealResponse converts a slice of domain.Deal to a slice of DealResponse DTOs
func ToListDealResponse(deals []domain.Deal) []DealResponse {
	res := make([]DealResponse, len(deals))
	for i := range deals {
		res[i] = ToDealResponse(&deals[i])
	}
	return res
}

// ToDomain converts the response back into a domain.Deal.
func (r DealResponse) ToDomain() domain.Deal {
	return domain.Deal{
		DealID:     r.DealID,
		Name:       r.Name,
		CompanyURL: r.CompanyURL,
		OwnerID:    r.OwnerID,
		Stage:      r.Stage,
		Round:      r.Round,
		CheckSize:  r.CheckSize,
		Status:     r.Status,
		AuditFields: domain.AuditFields{
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		},
	}
}

// ActivityResponse defines the data returned for an activity log entry.
type ActivityResponse struct {
	ActivityID  int64               `json:"id"`
	DealID      int64               `json:"deal_id"`
	UserID      int64               `json:"user_id"`
	Type        domain.ActivityType `json:"type"`
	Description string              `json:"description"`
	Timestamp   time.Time           `json:"timestamp"`
}

// ToListActivityResponse converts a slice of domain.Activity to a slice of ActivityResponse DTOs
func ToListActivityResponse(activities []domain.Activity) []ActivityResponse {
	res := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		res[i] = ActivityResponse{
			ActivityID:  a.ActivityID,
			DealID:      a.DealID,
			UserID:      a.UserID,
			Type:        a.Type,
			Description: a.Description,
			Timestamp:   a.Timestamp,
		}
	}
	return res
}

// ToDomain converts the response back into a domain.Activity.
func (r ActivityResponse) ToDomain() domain.Activity {
	return domain.Activity(r)
}
