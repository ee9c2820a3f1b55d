package domain

import (
	"context"
	"errors"
)

// Failure reasons recorded per customer during a run. These are outcomes,
// not errors: the run keeps going.
const (
	FailureUnknownCategory = "unknown_category"
	FailureDuplicateBill   = "duplicate_bill"
)

type RunRequest struct {
	FeederCode string
	Period     string

	// TariffRate overrides the configured default when set.
	TariffRate *float64
}

type Failure struct {
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

type RunSummary struct {
	FeederCode       string    `json:"feeder_code"`
	Period           string    `json:"period"`
	TotalHours       float64   `json:"total_hours"`
	TariffRate       float64   `json:"tariff_rate"`
	TotalCustomers   int       `json:"total_customers"`
	BilledCustomers  int       `json:"billed_customers"`
	ExcludedVacation int       `json:"excluded_for_vacation"`
	DuplicateBills   int       `json:"duplicate_bills"`
	FailedCustomers  int       `json:"failed_customers"`
	Failures         []Failure `json:"failures,omitempty"`
}

type ListRunRequest struct {
	FeederCode string
}

type ListRunResponse struct {
	Runs []AllocationRun `json:"runs"`
}

type Service interface {
	// Run executes one allocation pass over a feeder for a period.
	// Per-customer failures are collected in the summary; only run-level
	// problems (bad input, feeder missing, lock held, storage down)
	// surface as errors.
	Run(context.Context, RunRequest) (RunSummary, error)

	ListRuns(context.Context, ListRunRequest) (ListRunResponse, error)

	// HasCompletedRun reports whether a completed run already exists for
	// the feeder and period. The scheduler uses it to skip months that
	// were already closed.
	HasCompletedRun(ctx context.Context, feederCode, period string) (bool, error)
}

var (
	ErrInvalidFeeder      = errors.New("invalid_feeder")
	ErrInvalidPeriod      = errors.New("invalid_period")
	ErrInvalidTariff      = errors.New("invalid_tariff")
	ErrFeederNotFound     = errors.New("feeder_not_found")
	ErrRunInProgress      = errors.New("run_in_progress")
	ErrStorageUnavailable = errors.New("storage_unavailable")
)
