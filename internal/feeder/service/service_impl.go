package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/feeder/domain"
	"github.com/smallbiznis/voltra/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

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
		log:   p.Log.Named("feeder.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateFeederRequest) (domain.Feeder, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return domain.Feeder{}, domain.ErrInvalidCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Feeder{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	feeder := domain.Feeder{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      name,
		Region:    strings.TrimSpace(req.Region),
		Status:    domain.FeederStatusActive,
		Metadata:  datatypes.JSONMap{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &feeder); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Feeder{}, domain.ErrFeederExists
		}
		return domain.Feeder{}, err
	}

	return feeder, nil
}

func (s *Service) List(ctx context.Context, req domain.ListFeederRequest) (domain.ListFeederResponse, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListFeederFilter{
		Status: strings.TrimSpace(req.Status),
		Region: strings.TrimSpace(req.Region),
	})
	if err != nil {
		return domain.ListFeederResponse{}, err
	}

	feeders := make([]domain.Feeder, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		feeders = append(feeders, *item)
	}

	return domain.ListFeederResponse{Feeders: feeders}, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (domain.Feeder, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Feeder{}, domain.ErrInvalidCode
	}

	item, err := s.repo.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Feeder{}, err
	}
	if item == nil {
		return domain.Feeder{}, domain.ErrNotFound
	}

	return *item, nil
}

func (s *Service) ListActiveCodes(ctx context.Context) ([]string, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListFeederFilter{
		Status: string(domain.FeederStatusActive),
	})
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		codes = append(codes, item.Code)
	}
	return codes, nil
}
