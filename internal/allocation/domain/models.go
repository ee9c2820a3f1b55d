package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AllocationRun is the audit record of one billing run over a feeder and
// period. It captures the counts the operator sees plus the per-customer
// failures, so a rerun can be diagnosed without replaying logs.
type AllocationRun struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"id"`
	FeederCode       string         `gorm:"not null;index:idx_allocation_runs_feeder" json:"feeder_code"`
	Period           string         `gorm:"not null" json:"period"`
	Status           RunStatus      `gorm:"not null" json:"status"`
	TotalHours       float64        `gorm:"not null" json:"total_hours"`
	TariffRate       float64        `gorm:"not null" json:"tariff_rate"`
	TotalCustomers   int            `gorm:"not null" json:"total_customers"`
	BilledCustomers  int            `gorm:"not null" json:"billed_customers"`
	ExcludedVacation int            `gorm:"not null" json:"excluded_for_vacation"`
	DuplicateBills   int            `gorm:"not null" json:"duplicate_bills"`
	FailedCustomers  int            `gorm:"not null" json:"failed_customers"`
	Failures         datatypes.JSON `gorm:"type:jsonb" json:"failures,omitempty"`
	StartedAt        time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt       time.Time      `gorm:"not null" json:"finished_at"`
}
