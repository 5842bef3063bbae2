package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invtally/invtally/internal/grid"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/store"
)

var (
	ErrNameRequired = errors.New("catalog: product name is required")
	ErrCodeRequired = errors.New("catalog: product code is required")

	ErrNegativeStock = errors.New("catalog: quantities cannot be negative")
	ErrEmptyStock    = errors.New("catalog: at least one quantity is required")
)

// Service implements the manual catalog operations: add product, additive
// stock entry, deletion, search and summary totals.
type Service struct {
	store store.ProductStore
}

func NewService(s store.ProductStore) *Service {
	return &Service{store: s}
}

// NewProductInput is a manual catalog entry. Stock buckets default to zero
// when omitted; the total is always derived.
type NewProductInput struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Retail      float64 `json:"retail"`
	RequiredQty int     `json:"required_qty"`
	GoodQty     int     `json:"good_qty"`
	DamagedQty  int     `json:"damaged_qty"`
	Gift        int     `json:"gift"`
	Note        string  `json:"note"`
}

// AddProduct creates a product from manual entry.
func (s *Service) AddProduct(ctx context.Context, in NewProductInput) (*models.Product, error) {
	name := strings.TrimSpace(in.Name)
	code := strings.TrimSpace(in.Code)
	if name == "" {
		return nil, ErrNameRequired
	}
	if code == "" {
		return nil, ErrCodeRequired
	}
	if in.GoodQty < 0 || in.DamagedQty < 0 || in.Gift < 0 {
		return nil, ErrNegativeStock
	}

	p := &models.Product{
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		Retail:      in.Retail,
		RequiredQty: in.RequiredQty,
		GoodQty:     in.GoodQty,
		DamagedQty:  in.DamagedQty,
		Gift:        in.Gift,
		Note:        strings.TrimSpace(in.Note),
	}
	p.RecomputeTotal()
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// StockInput is an additive stock entry against an existing product.
type StockInput struct {
	Good    int     `json:"good"`
	Damaged int     `json:"damaged"`
	Gift    int     `json:"gift"`
	Note    *string `json:"note"` // nil keeps the existing note
}

// AddStock merges the deltas into the product's buckets and recomputes the
// total in the same write.
func (s *Service) AddStock(ctx context.Context, id int64, in StockInput) (*models.Product, error) {
	if in.Good < 0 || in.Damaged < 0 || in.Gift < 0 {
		return nil, ErrNegativeStock
	}
	if in.Good == 0 && in.Damaged == 0 && in.Gift == 0 {
		return nil, ErrEmptyStock
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.GoodQty += in.Good
	p.DamagedQty += in.Damaged
	p.Gift += in.Gift
	if in.Note != nil {
		p.Note = strings.TrimSpace(*in.Note)
	}
	p.RecomputeTotal()
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateField applies a single-cell edit by column name: grid validation,
// total recompute, full-row persist. This is the commit path of the edit
// sequencer exposed to non-interactive callers.
func (s *Service) UpdateField(ctx context.Context, id int64, column, raw string) (*models.Product, error) {
	if column == models.ColID {
		return nil, fmt.Errorf("catalog: column %q is not editable", column)
	}
	normalized, err := grid.CoerceInput(column, raw)
	if err != nil {
		return nil, err
	}
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := grid.ApplyInput(p, column, normalized); err != nil {
		return nil, err
	}
	p.RecomputeTotal()
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product by id.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// Search lists products matching the term.
func (s *Service) Search(ctx context.Context, term string) ([]models.Product, error) {
	return s.store.List(ctx, term)
}

// Totals are the summary numbers shown above the grid.
type Totals struct {
	Required int `json:"required"`
	Good     int `json:"good"`
	Damaged  int `json:"damaged"`
	Gift     int `json:"gift"`
	Stock    int `json:"stock"`
	Products int `json:"products"`
}

// Stats sums the stock columns over the given rows.
func Stats(products []models.Product) Totals {
	var t Totals
	for _, p := range products {
		t.Required += p.RequiredQty
		t.Good += p.GoodQty
		t.Damaged += p.DamagedQty
		t.Gift += p.Gift
		t.Stock += p.TotalQty
	}
	t.Products = len(products)
	return t
}
