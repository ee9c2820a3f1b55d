package domain

import (
	"context"
	"errors"
)

type CreateFeederRequest struct {
	Code   string
	Name   string
	Region string
}

type ListFeederRequest struct {
	Status string
	Region string
}

type ListFeederFilter struct {
	Status string
	Region string
}

type ListFeederResponse struct {
	Feeders []Feeder `json:"feeders"`
}

type Service interface {
	Create(context.Context, CreateFeederRequest) (Feeder, error)
	List(context.Context, ListFeederRequest) (ListFeederResponse, error)
	GetByCode(context.Context, string) (Feeder, error)
	ListActiveCodes(context.Context) ([]string, error)
}

var (
	ErrInvalidCode  = errors.New("invalid_code")
	ErrInvalidName  = errors.New("invalid_name")
	ErrFeederExists = errors.New("feeder_exists")
	ErrNotFound     = errors.New("not_found")
)
