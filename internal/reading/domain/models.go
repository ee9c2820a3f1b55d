package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EnergyReading records how many hours of supply a feeder delivered on a
// given day. Allocation sums hours per feeder, it never inspects individual
// rows.
type EnergyReading struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	FeederCode    string       `gorm:"not null;index:idx_energy_readings_feeder" json:"feeder_code"`
	HoursSupplied float64      `gorm:"not null" json:"hours_supplied"`
	ReadingDate   time.Time    `gorm:"not null" json:"reading_date"`
	RecordedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"recorded_at"`
}

func (EnergyReading) TableName() string {
	return "energy_readings"
}
