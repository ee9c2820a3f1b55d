package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	FeederCode   string
	Name         string
	CategoryCode string
}

type ListCustomerRequest struct {
	FeederCode string
	Verified   *bool
	Pagination pagination.Pagination
}

type ListCustomerFilter struct {
	FeederCode string
	Verified   *bool
}

type ListCustomerResponse struct {
	Customers []Customer          `json:"customers"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(context.Context, snowflake.ID) (Customer, error)

	// Verify marks a customer eligible for billing. Verification is a
	// one-way gate, there is no unverify.
	Verify(context.Context, snowflake.ID) (Customer, error)

	// ListVerifiedByFeeder returns every verified customer wired to the
	// feeder, regardless of vacation state. Vacation filtering happens
	// at allocation time.
	ListVerifiedByFeeder(ctx context.Context, feederCode string) ([]Customer, error)
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidFeederCode = errors.New("invalid_feeder_code")
	ErrInvalidCategory   = errors.New("invalid_category")
	ErrCustomerNotFound  = errors.New("customer_not_found")
)
