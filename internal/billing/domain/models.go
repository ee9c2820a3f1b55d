package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Bill is the outcome of allocating one customer's share of a feeder's
// supply for a period. The unique index on (customer_id, period) is the
// idempotency boundary: a rerun cannot double-bill anyone.
type Bill struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID      snowflake.ID `gorm:"not null;uniqueIndex:idx_bills_customer_period,priority:1" json:"customer_id"`
	FeederCode      string       `gorm:"not null;index:idx_bills_feeder" json:"feeder_code"`
	Period          string       `gorm:"not null;uniqueIndex:idx_bills_customer_period,priority:2" json:"period"`
	TotalHours      float64      `gorm:"not null" json:"total_hours"`
	LoadFactor      float64      `gorm:"not null" json:"load_factor"`
	AllocatedEnergy float64      `gorm:"not null" json:"allocated_energy"`
	TariffRate      float64      `gorm:"not null" json:"tariff_rate"`
	Amount          float64      `gorm:"not null" json:"amount"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
