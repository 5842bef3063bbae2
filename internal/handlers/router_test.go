package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invtally/invtally/internal/config"
	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/reconcile"
	"github.com/invtally/invtally/internal/services/catalog"
	"github.com/invtally/invtally/internal/store"
	"github.com/invtally/invtally/internal/websocket"
)

func newTestRouter(t *testing.T, products ...models.Product) (*Router, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	for i := range products {
		products[i].RecomputeTotal()
		require.NoError(t, s.Create(context.Background(), &products[i]))
	}
	r := NewRouter(s, catalog.NewService(s), reconcile.New(s), websocket.NewHub(), config.LabelConfig{})
	return r, s
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestListAndSearchProducts(t *testing.T) {
	r, _ := newTestRouter(t,
		models.Product{Name: "Wireless Mouse", Code: "WM-1"},
		models.Product{Name: "Keyboard", Code: "KB-1"},
	)

	rec := doJSON(t, r, "GET", "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = doJSON(t, r, "GET", "/api/products?q=mouse", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "WM-1", filtered[0].Code)
}

func TestCreateProduct(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, "POST", "/api/products", catalog.NewProductInput{
		Name: "Widget", Code: "W-1", GoodQty: 2, Gift: 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 3, p.TotalQty)

	// Missing name
	rec = doJSON(t, r, "POST", "/api/products", catalog.NewProductInput{Code: "W-2"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Duplicate code
	rec = doJSON(t, r, "POST", "/api/products", catalog.NewProductInput{Name: "Other", Code: "W-1"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetAndDeleteProduct(t *testing.T) {
	r, _ := newTestRouter(t, models.Product{Name: "Widget", Code: "W-1"})

	rec := doJSON(t, r, "GET", "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "GET", "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, "GET", "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, "DELETE", "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, "DELETE", "/api/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateFieldEndpoint(t *testing.T) {
	r, s := newTestRouter(t, models.Product{Name: "Widget", Code: "W-1", DamagedQty: 1})

	rec := doJSON(t, r, "PUT", "/api/products/1/field", map[string]string{
		"column": models.ColGoodQty, "value": "7",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 7, p.GoodQty)
	assert.Equal(t, 8, p.TotalQty)

	// Non-numeric input into a numeric column is a validation failure.
	rec = doJSON(t, r, "PUT", "/api/products/1/field", map[string]string{
		"column": models.ColCost, "value": "abc",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddStockEndpoint(t *testing.T) {
	r, s := newTestRouter(t, models.Product{Name: "Widget", Code: "W-1", GoodQty: 5})

	rec := doJSON(t, r, "POST", "/api/products/1/stock", catalog.StockInput{Good: 3})
	require.Equal(t, http.StatusOK, rec.Code)

	p, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 8, p.GoodQty)

	rec = doJSON(t, r, "POST", "/api/products/1/stock", catalog.StockInput{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t,
		models.Product{Name: "A", Code: "A-1", RequiredQty: 10, GoodQty: 4},
		models.Product{Name: "B", Code: "B-1", RequiredQty: 5, GoodQty: 5},
	)

	rec := doJSON(t, r, "GET", "/api/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var totals catalog.Totals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 15, totals.Required)
	assert.Equal(t, 9, totals.Stock)
	assert.Equal(t, 2, totals.Products)
}

func TestReconcileEndpoint(t *testing.T) {
	r, s := newTestRouter(t, models.Product{Name: "Stale", Code: "OLD-1"})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "batch.csv")
	require.NoError(t, err)
	fmt.Fprint(fw, "code,name,required_qty\nA-1,Widget,5\n")
	require.NoError(t, mw.WriteField("mode", "full-sync"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/reconcile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report reconcile.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 1, report.Deleted)

	_, err = s.GetByCode(context.Background(), "A-1")
	assert.NoError(t, err)
	_, err = s.GetByCode(context.Background(), "OLD-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReconcileEndpointRejectsBadMode(t *testing.T) {
	r, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "batch.csv")
	require.NoError(t, err)
	fmt.Fprint(fw, "code\nA-1\n")
	require.NoError(t, mw.WriteField("mode", "replace"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/reconcile", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportEndpoints(t *testing.T) {
	r, _ := newTestRouter(t,
		models.Product{Name: "A", Code: "A-1", RequiredQty: 10, GoodQty: 4},
	)

	rec := doJSON(t, r, "GET", "/api/reports/catalog.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\xEF\xBB\xBF"))

	rec = doJSON(t, r, "GET", "/api/reports/mismatch.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Mismatch-Count"))

	for _, path := range []string{
		"/api/reports/catalog.pdf",
		"/api/reports/mismatch.pdf",
		"/api/reports/labels.pdf",
	} {
		rec = doJSON(t, r, "GET", path, nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"), path)
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")), path)
	}
}
