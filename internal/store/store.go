package store

import (
	"context"
	"errors"

	"github.com/invtally/invtally/internal/models"
)

var (
	// ErrNotFound is returned when no product matches the given id or code.
	ErrNotFound = errors.New("store: product not found")

	// ErrDuplicateCode is returned when an insert or update would violate
	// the unique constraint on the product code. Callers treat it as a
	// distinct, recoverable condition rather than a generic failure.
	ErrDuplicateCode = errors.New("store: product code already exists")
)

// ProductStore is the persistence collaborator shared by the reconciler,
// the grid sequencer and the catalog service.
type ProductStore interface {
	// List returns all products ordered by id ascending. When search is
	// non-empty, only rows whose name, description or code contain the
	// term are returned.
	List(ctx context.Context, search string) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	GetByCode(ctx context.Context, code string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
	DeleteByCode(ctx context.Context, code string) error
	// Codes returns every product code currently in the catalog.
	Codes(ctx context.Context) ([]string, error)
}
