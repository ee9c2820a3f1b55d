package domain

import (
	"context"
	"errors"
)

type CreateCategoryRequest struct {
	Code        string
	LoadFactor  float64
	Description string
}

type ListCategoryResponse struct {
	Categories []LoadCategory `json:"categories"`
}

type Service interface {
	Create(context.Context, CreateCategoryRequest) (LoadCategory, error)
	List(context.Context) (ListCategoryResponse, error)
}

// Directory resolves category codes during bill calculation. An unknown
// code is always a hard error and never falls back to a default factor.
type Directory interface {
	Lookup(ctx context.Context, code string) (LoadCategory, error)
}

var (
	ErrCategoryNotFound  = errors.New("load_category_not_found")
	ErrCategoryExists    = errors.New("load_category_exists")
	ErrInvalidCode       = errors.New("invalid_code")
	ErrInvalidLoadFactor = errors.New("invalid_load_factor")
)
