package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/dealflow/internal/apperrors"
)

// MemoSection names one part of an investment memo.
type MemoSection string

const (
	SectionSummary       MemoSection = "Summary"
	SectionMarket        MemoSection = "Market"
	SectionProduct       MemoSection = "Product"
	SectionTraction      MemoSection = "Traction"
	SectionRisks         MemoSection = "Risks"
	SectionOpenQuestions MemoSection = "Open Questions"
)

// MemoSectionOrder lists the sections in the order they are presented.
var MemoSectionOrder = []MemoSection{
	SectionSummary,
	SectionMarket,
	SectionProduct,
	SectionTraction,
	SectionRisks,
	SectionOpenQuestions,
}

// ParseMemoSection matches a section name exactly, then case-insensitively.
func ParseMemoSection(name string) (MemoSection, error) {
	for _, s := range MemoSectionOrder {
		if string(s) == name {
			return s, nil
		}
	}
	for _, s := range MemoSectionOrder {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown memo section %q: %w", name, apperrors.ErrValidation)
}

// MemoSections is the content of a memo: one free-text entry per fixed section.
type MemoSections struct {
	Summary       string `json:"Summary"`
	Market        string `json:"Market"`
	Product       string `json:"Product"`
	Traction      string `json:"Traction"`
	Risks         string `json:"Risks"`
	OpenQuestions string `json:"Open Questions"`
}

// Get returns the text of a section.
func (m MemoSections) Get(section MemoSection) string {
	switch section {
	case SectionSummary:
		return m.Summary
	case SectionMarket:
		return m.Market
	case SectionProduct:
		return m.Product
	case SectionTraction:
		return m.Traction
	case SectionRisks:
		return m.Risks
	case SectionOpenQuestions:
		return m.OpenQuestions
	}
	return ""
}

// Set replaces the text of a section.
func (m *MemoSections) Set(section MemoSection, text string) error {
	switch section {
	case SectionSummary:
		m.Summary = text
	case SectionMarket:
		m.Market = text
	case SectionProduct:
		m.Product = text
	case SectionTraction:
		m.Traction = text
	case SectionRisks:
		m.Risks = text
	case SectionOpenQuestions:
		m.OpenQuestions = text
	default:
		return fmt.Errorf("unknown memo section %q: %w", section, apperrors.ErrValidation)
	}
	return nil
}

// IsEmpty reports whether every section is blank.
func (m MemoSections) IsEmpty() bool {
	return m == MemoSections{}
}

// Map returns the sections keyed by name.
func (m MemoSections) Map() map[string]string {
	out := make(map[string]string, len(MemoSectionOrder))
	for _, s := range MemoSectionOrder {
		out[string(s)] = m.Get(s)
	}
	return out
}

// MemoSectionsFromMap builds sections from a name-keyed mapping.
// Missing sections are left blank; unknown names are a validation error.
func MemoSectionsFromMap(in map[string]string) (MemoSections, error) {
	var m MemoSections
	for name, text := range in {
		section, err := ParseMemoSection(name)
		if err != nil {
			return MemoSections{}, err
		}
		if string(section) != name {
			return MemoSections{}, fmt.Errorf("unknown memo section %q: %w", name, apperrors.ErrValidation)
		}
		_ = m.Set(section, text)
	}
	return m, nil
}

// MarshalContent serializes sections into the stored memo content format.
func (m MemoSections) MarshalContent() (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to serialize memo sections: %w", err)
	}
	return string(b), nil
}

// ParseMemoContent deserializes stored memo content. Blank content yields empty sections.
func ParseMemoContent(content string) (MemoSections, error) {
	if strings.TrimSpace(content) == "" {
		return MemoSections{}, nil
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return MemoSections{}, fmt.Errorf("invalid memo content: %w", apperrors.ErrValidation)
	}
	return MemoSectionsFromMap(raw)
}

// Memo is the current document for a deal, projected from its latest version.
type Memo struct {
	MemoID           int64      `json:"id"`
	DealID           int64      `json:"deal_id"`
	CurrentVersionID *int64     `json:"current_version_id,omitempty"`
	Content          string     `json:"content"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// MemoVersion is an immutable snapshot of memo content.
type MemoVersion struct {
	MemoVersionID int64     `json:"id"`
	MemoID        int64     `json:"memo_id"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"created_at"`
	CreatedBy     int64     `json:"created_by"`
}
