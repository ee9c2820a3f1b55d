package domain

import (
	"context"
	"errors"
	"time"
)

type IngestReadingRequest struct {
	FeederCode    string
	HoursSupplied float64
	ReadingDate   time.Time
}

type ListReadingRequest struct {
	FeederCode string
}

type ListReadingResponse struct {
	Readings []EnergyReading `json:"readings"`
}

type Service interface {
	Ingest(context.Context, IngestReadingRequest) (EnergyReading, error)
	List(context.Context, ListReadingRequest) (ListReadingResponse, error)

	// TotalSupplyHours returns the sum of recorded hours for a feeder.
	// A feeder with no readings sums to zero, not an error.
	TotalSupplyHours(ctx context.Context, feederCode string) (float64, error)
}

var (
	ErrInvalidFeederCode = errors.New("invalid_feeder_code")
	ErrInvalidReading    = errors.New("invalid_reading")
)
