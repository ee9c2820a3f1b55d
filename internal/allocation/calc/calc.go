// Package calc computes a single customer's bill from feeder supply hours,
// a load factor and a tariff rate. It is pure arithmetic with validation,
// no storage or clock access, so allocation math stays trivially testable.
package calc

import "errors"

var (
	ErrInvalidSupplyHours = errors.New("invalid_supply_hours")
	ErrInvalidLoadFactor  = errors.New("invalid_load_factor")
	ErrInvalidTariff      = errors.New("invalid_tariff")
)

type Input struct {
	SupplyHours float64
	LoadFactor  float64
	TariffRate  float64
}

type Result struct {
	LoadFactor      float64
	AllocatedEnergy float64
	Amount          float64
}

// Compute allocates energy as supply hours scaled by the load factor and
// prices it at the tariff rate. Zero supply hours is a legal input and
// yields a zero-amount result.
func Compute(in Input) (Result, error) {
	if in.SupplyHours < 0 {
		return Result{}, ErrInvalidSupplyHours
	}
	if in.LoadFactor <= 0 {
		return Result{}, ErrInvalidLoadFactor
	}
	if in.TariffRate <= 0 {
		return Result{}, ErrInvalidTariff
	}

	energy := in.SupplyHours * in.LoadFactor
	return Result{
		LoadFactor:      in.LoadFactor,
		AllocatedEnergy: energy,
		Amount:          energy * in.TariffRate,
	}, nil
}
