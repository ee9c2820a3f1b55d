package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/voltra/internal/loadcategory/domain"
	"github.com/smallbiznis/voltra/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
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

	directory *directory
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("loadcategory.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCategoryRequest) (domain.LoadCategory, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return domain.LoadCategory{}, domain.ErrInvalidCode
	}
	if req.LoadFactor <= 0 {
		return domain.LoadCategory{}, domain.ErrInvalidLoadFactor
	}

	now := time.Now().UTC()
	category := domain.LoadCategory{
		ID:          s.genID.Generate(),
		Code:        code,
		LoadFactor:  req.LoadFactor,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &category); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.LoadCategory{}, domain.ErrCategoryExists
		}
		return domain.LoadCategory{}, err
	}

	if s.directory != nil {
		s.directory.invalidate()
	}

	return category, nil
}

func (s *Service) List(ctx context.Context) (domain.ListCategoryResponse, error) {
	categories, err := s.repo.ListAll(ctx, s.db)
	if err != nil {
		return domain.ListCategoryResponse{}, err
	}
	return domain.ListCategoryResponse{Categories: categories}, nil
}

// directory serves code lookups from an in-memory snapshot of the
// load_categories table. The snapshot is refreshed when a category is
// added, never mutated in place.
type directory struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository

	mu     sync.RWMutex
	byCode map[string]domain.LoadCategory
	loaded bool
}

// NewDirectory builds the lookup directory backing the bill calculator.
func NewDirectory(p Params, svc domain.Service) domain.Directory {
	dir := &directory{
		db:   p.DB,
		log:  p.Log.Named("loadcategory.directory"),
		repo: p.Repo,
	}
	if impl, ok := svc.(*Service); ok {
		impl.directory = dir
	}
	return dir
}

func (d *directory) Lookup(ctx context.Context, code string) (domain.LoadCategory, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.LoadCategory{}, domain.ErrCategoryNotFound
	}

	d.mu.RLock()
	if d.loaded {
		category, ok := d.byCode[code]
		d.mu.RUnlock()
		if !ok {
			return domain.LoadCategory{}, domain.ErrCategoryNotFound
		}
		return category, nil
	}
	d.mu.RUnlock()

	if err := d.reload(ctx); err != nil {
		return domain.LoadCategory{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	category, ok := d.byCode[code]
	if !ok {
		return domain.LoadCategory{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (d *directory) reload(ctx context.Context) error {
	categories, err := d.repo.ListAll(ctx, d.db)
	if err != nil {
		return err
	}

	byCode := make(map[string]domain.LoadCategory, len(categories))
	for _, category := range categories {
		byCode[strings.ToUpper(category.Code)] = category
	}

	d.mu.Lock()
	d.byCode = byCode
	d.loaded = true
	d.mu.Unlock()

	d.log.Debug("load category directory refreshed", zap.Int("categories", len(byCode)))
	return nil
}

func (d *directory) invalidate() {
	d.mu.Lock()
	d.loaded = false
	d.mu.Unlock()
}
