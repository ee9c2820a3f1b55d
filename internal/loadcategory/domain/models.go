package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// LoadCategory maps a tariff category code to its allocation load factor.
type LoadCategory struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"not null;uniqueIndex" json:"code"`
	LoadFactor  float64      `gorm:"not null" json:"load_factor"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
