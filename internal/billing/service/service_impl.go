package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/billing/domain"
	"github.com/smallbiznis/voltra/internal/observability/metrics"
	"github.com/smallbiznis/voltra/pkg/db"
	"github.com/smallbiznis/voltra/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("billing.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Store(ctx context.Context, bill *domain.Bill) error {
	if bill == nil || bill.CustomerID == 0 {
		return domain.ErrInvalidBill
	}
	if strings.TrimSpace(bill.Period) == "" {
		return domain.ErrInvalidPeriod
	}

	if bill.ID == 0 {
		bill.ID = s.genID.Generate()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, s.db, bill); err != nil {
		if db.IsDuplicateKeyErr(err) {
			s.metrics.RecordDuplicateBills(ctx, bill.FeederCode, 1)
			return domain.ErrDuplicateBill
		}
		return err
	}

	s.metrics.RecordBillsCreated(ctx, bill.FeederCode, 1)
	return nil
}

func (s *Service) ListByCustomer(ctx context.Context, req domain.ListBillByCustomerRequest) (domain.ListBillResponse, error) {
	if req.CustomerID == 0 {
		return domain.ListBillResponse{}, domain.ErrInvalidCustomer
	}

	items, pageInfo, err := s.repo.ListByCustomer(ctx, s.db, req.CustomerID, req.Pagination)
	if err != nil {
		return domain.ListBillResponse{}, err
	}

	return toListResponse(items, pageInfo), nil
}

func (s *Service) ListByPeriod(ctx context.Context, req domain.ListBillByPeriodRequest) (domain.ListBillResponse, error) {
	period := strings.TrimSpace(req.Period)
	if period == "" {
		return domain.ListBillResponse{}, domain.ErrInvalidPeriod
	}

	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))

	items, pageInfo, err := s.repo.ListByPeriod(ctx, s.db, feederCode, period, req.Pagination)
	if err != nil {
		return domain.ListBillResponse{}, err
	}

	return toListResponse(items, pageInfo), nil
}

func toListResponse(items []*domain.Bill, pageInfo pagination.PageInfo) domain.ListBillResponse {
	bills := make([]domain.Bill, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		bills = append(bills, *item)
	}
	return domain.ListBillResponse{Bills: bills, PageInfo: pageInfo}
}
