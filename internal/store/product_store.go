package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/invtally/invtally/internal/models"
)

// GormStore implements ProductStore on top of GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) List(ctx context.Context, search string) ([]models.Product, error) {
	var products []models.Product
	q := s.db.WithContext(ctx).Order("id ASC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ? OR code ILIKE ?", like, like, like)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *GormStore) Get(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (s *GormStore) GetByCode(ctx context.Context, code string) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).Where("code = ?", code).First(&p).Error; err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (s *GormStore) Create(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return classify(err)
	}
	return nil
}

// Update persists the full row. Save writes every column, which matches the
// grid's commit semantics: the in-memory projection is authoritative at the
// moment of the write.
func (s *GormStore) Update(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (s *GormStore) DeleteByCode(ctx context.Context, code string) error {
	if err := s.db.WithContext(ctx).Where("code = ?", code).Delete(&models.Product{}).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (s *GormStore) Codes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Pluck("code", &codes).Error; err != nil {
		return nil, fmt.Errorf("list codes: %w", err)
	}
	return codes, nil
}

// classify maps GORM errors onto the store's error kinds. Relies on the
// connection being opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
func classify(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateCode
	default:
		return err
	}
}
