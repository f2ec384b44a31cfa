package types

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Patient is the aggregate-root row. The four assessment composites are
// stored as opaque JSONB blobs so the aggregate keeps its shape without
// another four child tables.
type Patient struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PersonID                uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"person_id"`
	Version                 int            `gorm:"not null" json:"version"`
	HousingCondition        datatypes.JSON `gorm:"type:jsonb" json:"housing_condition,omitempty"`
	SocioEconomicSituation  datatypes.JSON `gorm:"type:jsonb" json:"socioeconomic_situation,omitempty"`
	CommunitySupportNetwork datatypes.JSON `gorm:"type:jsonb" json:"community_support_network,omitempty"`
	SocialHealthSummary     datatypes.JSON `gorm:"type:jsonb" json:"social_health_summary,omitempty"`
}

func (Patient) TableName() string { return "patients" }
