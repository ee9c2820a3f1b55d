package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/observability/metrics"
	"github.com/smallbiznis/voltra/internal/reading/domain"
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
		log:     p.Log.Named("reading.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Ingest(ctx context.Context, req domain.IngestReadingRequest) (domain.EnergyReading, error) {
	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))
	if feederCode == "" {
		return domain.EnergyReading{}, domain.ErrInvalidFeederCode
	}

	// Negative hours never represent a real supply interval. Reject at the
	// door so allocation can trust the stored sum.
	if req.HoursSupplied < 0 {
		return domain.EnergyReading{}, domain.ErrInvalidReading
	}

	readingDate := req.ReadingDate
	if readingDate.IsZero() {
		readingDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	reading := domain.EnergyReading{
		ID:            s.genID.Generate(),
		FeederCode:    feederCode,
		HoursSupplied: req.HoursSupplied,
		ReadingDate:   readingDate,
		RecordedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &reading); err != nil {
		return domain.EnergyReading{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordReadingIngest(ctx, feederCode)
	}

	return reading, nil
}

func (s *Service) List(ctx context.Context, req domain.ListReadingRequest) (domain.ListReadingResponse, error) {
	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))
	if feederCode == "" {
		return domain.ListReadingResponse{}, domain.ErrInvalidFeederCode
	}

	items, err := s.repo.ListByFeeder(ctx, s.db, feederCode)
	if err != nil {
		return domain.ListReadingResponse{}, err
	}

	readings := make([]domain.EnergyReading, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		readings = append(readings, *item)
	}

	return domain.ListReadingResponse{Readings: readings}, nil
}

func (s *Service) TotalSupplyHours(ctx context.Context, feederCode string) (float64, error) {
	feederCode = strings.ToUpper(strings.TrimSpace(feederCode))
	if feederCode == "" {
		return 0, domain.ErrInvalidFeederCode
	}
	return s.repo.SumSupplyHours(ctx, s.db, feederCode)
}
