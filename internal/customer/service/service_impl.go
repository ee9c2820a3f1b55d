package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/customer/domain"
	lcdomain "github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Directory lcdomain.Directory
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	directory lcdomain.Directory
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		directory: p.Directory,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	feederCode := strings.ToUpper(strings.TrimSpace(req.FeederCode))
	if feederCode == "" {
		return domain.Customer{}, domain.ErrInvalidFeederCode
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	categoryCode := strings.ToUpper(strings.TrimSpace(req.CategoryCode))
	if categoryCode == "" {
		return domain.Customer{}, domain.ErrInvalidCategory
	}

	// The category must exist at registration time. This does not excuse
	// allocation from re-checking: a category can be removed after the
	// customer is created.
	if _, err := s.directory.Lookup(ctx, categoryCode); err != nil {
		if errors.Is(err, lcdomain.ErrCategoryNotFound) {
			return domain.Customer{}, domain.ErrInvalidCategory
		}
		return domain.Customer{}, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		ID:           s.genID.Generate(),
		FeederCode:   feederCode,
		Name:         name,
		CategoryCode: categoryCode,
		Verified:     false,
		Status:       domain.CustomerStatusActive,
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	filter := domain.ListCustomerFilter{
		FeederCode: strings.ToUpper(strings.TrimSpace(req.FeederCode)),
		Verified:   req.Verified,
	}

	items, pageInfo, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return domain.ListCustomerResponse{}, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}

	return domain.ListCustomerResponse{
		Customers: customers,
		PageInfo:  pageInfo,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return *item, nil
}

func (s *Service) Verify(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	if item.Verified {
		return *item, nil
	}

	item.Verified = true
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Customer{}, err
	}

	s.log.Info("customer verified",
		zap.String("customer_id", item.ID.String()),
		zap.String("feeder_code", item.FeederCode),
	)

	return *item, nil
}

func (s *Service) ListVerifiedByFeeder(ctx context.Context, feederCode string) ([]domain.Customer, error) {
	feederCode = strings.ToUpper(strings.TrimSpace(feederCode))
	if feederCode == "" {
		return nil, domain.ErrInvalidFeederCode
	}

	items, err := s.repo.ListVerifiedByFeeder(ctx, s.db, feederCode)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers, nil
}
