package store

import (
	"context"
	"sort"
	"strings"

	"github.com/invtally/invtally/internal/models"
)

// MemoryStore is an in-memory ProductStore. It backs the unit tests of the
// packages consuming the store and enforces the same code-uniqueness rule
// as the database.
type MemoryStore struct {
	products map[int64]*models.Product
	nextID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[int64]*models.Product), nextID: 0}
}

func (s *MemoryStore) List(_ context.Context, search string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matches(p *models.Product, term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Code), term)
}

func (s *MemoryStore) Get(_ context.Context, id int64) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) GetByCode(_ context.Context, code string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Create(_ context.Context, p *models.Product) error {
	for _, existing := range s.products {
		if existing.Code == p.Code {
			return ErrDuplicateCode
		}
	}
	s.nextID++
	p.ID = s.nextID
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *MemoryStore) Update(_ context.Context, p *models.Product) error {
	if _, ok := s.products[p.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.products {
		if existing.ID != p.ID && existing.Code == p.Code {
			return ErrDuplicateCode
		}
	}
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id int64) error {
	delete(s.products, id)
	return nil
}

func (s *MemoryStore) DeleteByCode(_ context.Context, code string) error {
	for id, p := range s.products {
		if p.Code == code {
			delete(s.products, id)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Codes(_ context.Context) ([]string, error) {
	codes := make([]string, 0, len(s.products))
	for _, p := range s.products {
		codes = append(codes, p.Code)
	}
	sort.Strings(codes)
	return codes, nil
}
