package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
)

type ListBillByCustomerRequest struct {
	CustomerID snowflake.ID
	Pagination pagination.Pagination
}

type ListBillByPeriodRequest struct {
	FeederCode string
	Period     string
	Pagination pagination.Pagination
}

type ListBillResponse struct {
	Bills    []Bill              `json:"bills"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	// Store persists a bill. A second bill for the same customer and
	// period fails with ErrDuplicateBill, never overwrites.
	Store(ctx context.Context, bill *Bill) error

	ListByCustomer(context.Context, ListBillByCustomerRequest) (ListBillResponse, error)
	ListByPeriod(context.Context, ListBillByPeriodRequest) (ListBillResponse, error)
}

var (
	ErrDuplicateBill   = errors.New("duplicate_bill")
	ErrInvalidBill     = errors.New("invalid_bill")
	ErrInvalidPeriod   = errors.New("invalid_period")
	ErrInvalidCustomer = errors.New("invalid_customer")
)
