package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsSection is the stored JSON payload of one customization section
type SettingsSection struct {
	Name      string         `gorm:"size:50;primaryKey"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (SettingsSection) TableName() string {
	return "settings_sections"
}
