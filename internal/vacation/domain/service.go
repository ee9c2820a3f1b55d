package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type CreateVacationRequest struct {
	CustomerID snowflake.ID
	FromDate   time.Time
	ToDate     time.Time
}

type UpdateVacationStatusRequest struct {
	VacationID snowflake.ID
	Status     VacationStatus
}

type ListVacationRequest struct {
	CustomerID snowflake.ID
}

type ListVacationResponse struct {
	Vacations []Vacation `json:"vacations"`
}

type Service interface {
	Create(context.Context, CreateVacationRequest) (Vacation, error)
	UpdateStatus(context.Context, UpdateVacationStatusRequest) (Vacation, error)
	List(context.Context, ListVacationRequest) (ListVacationResponse, error)

	// ActiveCustomerIDs filters the given customers down to those holding
	// at least one active vacation. Used by allocation to exclude
	// customers from a billing run.
	ActiveCustomerIDs(ctx context.Context, customerIDs []snowflake.ID) (map[snowflake.ID]struct{}, error)
}

var (
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrInvalidDateRange  = errors.New("invalid_date_range")
	ErrVacationNotFound  = errors.New("vacation_not_found")
	ErrInvalidTransition = errors.New("invalid_status_transition")
)
