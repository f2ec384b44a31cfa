package types

import (
	"time"
)

type MigrationMeta struct {
	Name      string    `gorm:"primaryKey" json:"name"`
	AppliedAt time.Time `gorm:"column:applied_at;not null" json:"applied_at"`
}

func (MigrationMeta) TableName() string { return "migrations_meta" }
