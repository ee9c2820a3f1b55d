package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type FeederStatus string

const (
	FeederStatusActive   FeederStatus = "active"
	FeederStatusInactive FeederStatus = "inactive"
)

// Feeder is a distribution line segment. Readings and customers reference
// feeders by code, the identifier stamped on field equipment.
type Feeder struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Code      string            `gorm:"not null;uniqueIndex" json:"code"`
	Name      string            `gorm:"not null" json:"name"`
	Region    string            `json:"region,omitempty"`
	Status    FeederStatus      `gorm:"not null;default:'active'" json:"status"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
