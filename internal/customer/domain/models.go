package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer is a billed connection point. CategoryCode ties the customer to a
// load category, which decides how much of the feeder's supply they are
// allocated. Only verified customers are ever billed.
type Customer struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	FeederCode   string            `gorm:"not null;index:idx_customers_feeder" json:"feeder_code"`
	Name         string            `gorm:"not null" json:"name"`
	CategoryCode string            `gorm:"not null" json:"category_code"`
	Verified     bool              `gorm:"not null;default:false" json:"verified"`
	Status       CustomerStatus    `gorm:"not null;default:'active'" json:"status"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
