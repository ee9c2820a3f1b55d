package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type VacationStatus string

const (
	VacationStatusPending   VacationStatus = "pending"
	VacationStatusApproved  VacationStatus = "approved"
	VacationStatusActive    VacationStatus = "active"
	VacationStatusCompleted VacationStatus = "completed"
	VacationStatusCancelled VacationStatus = "cancelled"
	VacationStatusRejected  VacationStatus = "rejected"
)

// Vacation is a customer's declared absence. Only status matters to billing:
// a customer with at least one active vacation is excluded from allocation.
// The date range is informational and never consulted by the engine.
type Vacation struct {
	ID         snowflake.ID   `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID   `gorm:"not null;index:idx_vacations_customer" json:"customer_id"`
	Status     VacationStatus `gorm:"not null;default:'pending'" json:"status"`
	FromDate   time.Time      `json:"from_date"`
	ToDate     time.Time      `json:"to_date"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
