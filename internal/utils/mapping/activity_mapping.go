package mapping

import (
	"github.com/SscSPs/dealflow/internal/core/domain"
	"github.com/SscSPs/dealflow/internal/models"
)

// ToModelActivity converts a domain Activity to a model Activity
func ToModelActivity(d domain.Activity) models.Activity {
	return models.Activity{
		ActivityID:   d.ActivityID,
		DealID:       d.DealID,
		UserID:       d.UserID,
		ActivityType: string(d.Type),
		Description:  d.Description,
		CreatedAt:    d.Timestamp,
	}
}

// ToDomainActivity converts a model Activity to a domain Activity
func ToDomainActivity(m models.Activity) domain.Activity {
	return domain.Activity{
		ActivityID:  m.ActivityID,
		DealID:      m.DealID,
		UserID:      m.UserID,
		Type:        domain.ActivityType(m.ActivityType),
		Description: m.Description,
		Timestamp:   m.CreatedAt,
	}
}

// ToDomainActivitySlice converts a slice of model Activities to a slice of domain Activities
func ToDomainActivitySlice(ms []models.Activity) []domain.Activity {
	ds := make([]domain.Activity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainActivity(m)
	}
	return ds
}
