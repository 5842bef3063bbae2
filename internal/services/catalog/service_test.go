package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtally/invtally/internal/grid"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/store"
)

func newService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewService(s), s
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p, err := svc.AddProduct(ctx, NewProductInput{
		Name: "  Widget  ", Code: " W-1 ", Cost: 1.2, Retail: 3.4,
		RequiredQty: 10, GoodQty: 2, Gift: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "W-1", p.Code)
	assert.Equal(t, 3, p.TotalQty)
}

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.AddProduct(ctx, NewProductInput{Code: "W-1"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "   "})
	assert.ErrorIs(t, err, ErrCodeRequired)

	_, err = svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "W-1", GoodQty: -1})
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestAddProductDuplicateCode(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "W-1"})
	require.NoError(t, err)

	_, err = svc.AddProduct(ctx, NewProductInput{Name: "Other", Code: "W-1"})
	assert.ErrorIs(t, err, store.ErrDuplicateCode)
}

func TestAddStockIsAdditive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p, err := svc.AddProduct(ctx, NewProductInput{
		Name: "Widget", Code: "W-1", GoodQty: 5, DamagedQty: 1, Note: "old note",
	})
	require.NoError(t, err)

	p, err = svc.AddStock(ctx, p.ID, StockInput{Good: 3, Gift: 2})
	require.NoError(t, err)
	assert.Equal(t, 8, p.GoodQty)
	assert.Equal(t, 1, p.DamagedQty)
	assert.Equal(t, 2, p.Gift)
	assert.Equal(t, 11, p.TotalQty)
	assert.Equal(t, "old note", p.Note) // nil note keeps the existing one

	note := "restocked"
	p, err = svc.AddStock(ctx, p.ID, StockInput{Good: 1, Note: &note})
	require.NoError(t, err)
	assert.Equal(t, "restocked", p.Note)
	assert.Equal(t, 12, p.TotalQty)
}

func TestAddStockValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	p, err := svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "W-1"})
	require.NoError(t, err)

	_, err = svc.AddStock(ctx, p.ID, StockInput{Good: -1})
	assert.ErrorIs(t, err, ErrNegativeStock)

	_, err = svc.AddStock(ctx, p.ID, StockInput{})
	assert.ErrorIs(t, err, ErrEmptyStock)

	_, err = svc.AddStock(ctx, 99, StockInput{Good: 1})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateField(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	p, err := svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "W-1", DamagedQty: 1})
	require.NoError(t, err)

	p, err = svc.UpdateField(ctx, p.ID, models.ColGoodQty, "7")
	require.NoError(t, err)
	assert.Equal(t, 7, p.GoodQty)
	assert.Equal(t, 8, p.TotalQty)

	p, err = svc.UpdateField(ctx, p.ID, models.ColCost, "2.5")
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.Cost)

	_, err = svc.UpdateField(ctx, p.ID, models.ColCost, "abc")
	assert.ErrorIs(t, err, grid.ErrValidation)

	_, err = svc.UpdateField(ctx, p.ID, models.ColID, "9")
	assert.Error(t, err)

	stored, err := st.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.5, stored.Cost)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, st := newService(t)

	p, err := svc.AddProduct(ctx, NewProductInput{Name: "Widget", Code: "W-1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	_, err = st.Get(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID), store.ErrNotFound)
}

func TestStats(t *testing.T) {
	products := []models.Product{
		{RequiredQty: 10, GoodQty: 4, DamagedQty: 1, Gift: 1, TotalQty: 6},
		{RequiredQty: 5, GoodQty: 5, TotalQty: 5},
	}

	totals := Stats(products)
	assert.Equal(t, Totals{
		Required: 15, Good: 9, Damaged: 1, Gift: 1, Stock: 11, Products: 2,
	}, totals)

	assert.Equal(t, Totals{}, Stats(nil))
}
