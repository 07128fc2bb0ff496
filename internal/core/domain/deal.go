package domain

import (
	"fmt"

	"github.com/SscSPs/dealflow/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DealStage is a pipeline phase. The zero value is not a valid stage.
type DealStage string

const (
	StageSourced   DealStage = "Sourced"
	StageScreen    DealStage = "Screen"
	StageDiligence DealStage = "Diligence"
	StageIC        DealStage = "IC"
	StageInvested  DealStage = "Invested"
	StagePassed    DealStage = "Passed"
)

// DealStages lists every stage in pipeline order.
var DealStages = []DealStage{
	StageSourced,
	StageScreen,
	StageDiligence,
	StageIC,
	StageInvested,
	StagePassed,
}

// DealStatusActive is the status every deal starts with.
const DealStatusActive = "active"

// IsValid reports whether s is one of the fixed pipeline stages.
func (s DealStage) IsValid() bool {
	for _, stage := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}

// ParseDealStage converts a string into a DealStage, rejecting anything outside the fixed set.
func ParseDealStage(s string) (DealStage, error) {
	stage := DealStage(s)
	if !stage.IsValid() {
		return "", fmt.Errorf("unknown deal stage %q: %w", s, apperrors.ErrValidation)
	}
	return stage, nil
}

// UnmarshalText makes decoding (JSON, form, query) reject unknown stages.
func (s *DealStage) UnmarshalText(text []byte) error {
	stage, err := ParseDealStage(string(text))
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

// MarshalText encodes the stage as its name.
func (s DealStage) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s DealStage) String() string {
	return string(s)
}

// Deal is an investment opportunity moving through the pipeline.
type Deal struct {
	DealID     int64            `json:"id"` // Assigned by the database, immutable
	Name       string           `json:"name"`
	CompanyURL *string          `json:"company_url,omitempty"`
	OwnerID    *int64           `json:"owner_id,omitempty"`
	Stage      DealStage        `json:"stage"`
	Round      *string          `json:"round,omitempty"`
	CheckSize  *decimal.Decimal `json:"check_size,omitempty"` // In millions
	Status     string           `json:"status"`
	AuditFields
}
