package mapping

import (
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelDeal converts a domain Deal to a model Deal
func ToModelDeal(d domain.Deal) models.Deal {
	m := models.Deal{
		DealID:      d.DealID,
		Name:        d.Name,
		CompanyURL:  d.CompanyURL,
		OwnerID:     d.OwnerID,
		Stage:       string(d.Stage),
		Round:       d.Round,
		Status:      d.Status,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.CheckSize != nil {
		m.CheckSize = decimal.NewNullDecimal(*d.CheckSize)
	}
	return m
}

// ToDomainDeal converts a model Deal to a domain Deal
func ToDomainDeal(m models.Deal) domain.Deal {
	d := domain.Deal{
		DealID:      m.DealID,
		Name:        m.Name,
		CompanyURL:  m.CompanyURL,
		OwnerID:     m.OwnerID,
		Stage:       domain.DealStage(m.Stage),
		Round:       m.Round,
		Status:      m.Status,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.CheckSize.Valid {
		size := m.CheckSize.Decimal
		d.CheckSize = &size
	}
	return d
}

// ToDomainDealSlice converts a slice of model Deals to a slice of domain Deals
func ToDomainDealSlice(ms []models.Deal) []domain.Deal {
	ds := make([]domain.Deal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDeal(m)
	}
	return ds
}
