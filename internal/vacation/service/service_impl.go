package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/vacation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// validTransitions holds the allowed lifecycle moves. Anything not listed
// is rejected.
var validTransitions = map[domain.VacationStatus][]domain.VacationStatus{
	domain.VacationStatusPending:  {domain.VacationStatusApproved, domain.VacationStatusRejected, domain.VacationStatusCancelled},
	domain.VacationStatusApproved: {domain.VacationStatusActive, domain.VacationStatusCancelled},
	domain.VacationStatusActive:   {domain.VacationStatusCompleted, domain.VacationStatusCancelled},
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("vacation.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateVacationRequest) (domain.Vacation, error) {
	if req.CustomerID == 0 {
		return domain.Vacation{}, domain.ErrInvalidCustomer
	}

	if !req.FromDate.IsZero() && !req.ToDate.IsZero() && req.ToDate.Before(req.FromDate) {
		return domain.Vacation{}, domain.ErrInvalidDateRange
	}

	now := time.Now().UTC()
	vacation := domain.Vacation{
		ID:         s.genID.Generate(),
		CustomerID: req.CustomerID,
		Status:     domain.VacationStatusPending,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Insert(ctx, s.db, &vacation); err != nil {
		return domain.Vacation{}, err
	}

	return vacation, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateVacationStatusRequest) (domain.Vacation, error) {
	item, err := s.repo.FindByID(ctx, s.db, req.VacationID)
	if err != nil {
		return domain.Vacation{}, err
	}
	if item == nil {
		return domain.Vacation{}, domain.ErrVacationNotFound
	}

	if item.Status == req.Status {
		return *item, nil
	}

	if !transitionAllowed(item.Status, req.Status) {
		return domain.Vacation{}, domain.ErrInvalidTransition
	}

	item.Status = req.Status
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Vacation{}, err
	}

	s.log.Info("vacation status changed",
		zap.String("vacation_id", item.ID.String()),
		zap.String("customer_id", item.CustomerID.String()),
		zap.String("status", string(item.Status)),
	)

	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListVacationRequest) (domain.ListVacationResponse, error) {
	if req.CustomerID == 0 {
		return domain.ListVacationResponse{}, domain.ErrInvalidCustomer
	}

	items, err := s.repo.ListByCustomer(ctx, s.db, req.CustomerID)
	if err != nil {
		return domain.ListVacationResponse{}, err
	}

	vacations := make([]domain.Vacation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		vacations = append(vacations, *item)
	}

	return domain.ListVacationResponse{Vacations: vacations}, nil
}

func (s *Service) ActiveCustomerIDs(ctx context.Context, customerIDs []snowflake.ID) (map[snowflake.ID]struct{}, error) {
	if len(customerIDs) == 0 {
		return map[snowflake.ID]struct{}{}, nil
	}

	ids, err := s.repo.ListActiveCustomerIDs(ctx, s.db, customerIDs)
	if err != nil {
		return nil, err
	}

	active := make(map[snowflake.ID]struct{}, len(ids))
	for _, id := range ids {
		active[id] = struct{}{}
	}
	return active, nil
}

func transitionAllowed(from, to domain.VacationStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
