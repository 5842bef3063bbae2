package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/invtally/invtally/internal/models"
	"github.com/invtally/invtally/internal/report"
)

func attachment(w http.ResponseWriter, name, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_%s", time.Now().Format("2006-01-02"), name)))
}

func (r *Router) loadCatalog(w http.ResponseWriter, req *http.Request) ([]models.Product, bool) {
	products, err := r.store.List(req.Context(), "")
	if err != nil {
		respondStoreError(w, err)
		return nil, false
	}
	return products, true
}

func (r *Router) catalogCSV(w http.ResponseWriter, req *http.Request) {
	products, ok := r.loadCatalog(w, req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCatalogCSV(&buf, products); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "catalog.csv", "text/csv; charset=utf-8")
	w.Write(buf.Bytes())
}

func (r *Router) catalogPDF(w http.ResponseWriter, req *http.Request) {
	products, ok := r.loadCatalog(w, req)
	if !ok {
		return
	}

	data, err := report.BuildCatalogPDF(products)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "catalog.pdf", "application/pdf")
	w.Write(data)
}

func (r *Router) mismatchCSV(w http.ResponseWriter, req *http.Request) {
	products, ok := r.loadCatalog(w, req)
	if !ok {
		return
	}

	var buf bytes.Buffer
	count, err := report.WriteMismatchCSV(&buf, products)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "mismatch.csv", "text/csv; charset=utf-8")
	w.Header().Set("X-Mismatch-Count", fmt.Sprint(count))
	w.Write(buf.Bytes())
}

func (r *Router) mismatchPDF(w http.ResponseWriter, req *http.Request) {
	products, ok := r.loadCatalog(w, req)
	if !ok {
		return
	}

	data, count, err := report.BuildMismatchPDF(products)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "mismatch.pdf", "application/pdf")
	w.Header().Set("X-Mismatch-Count", fmt.Sprint(count))
	w.Write(data)
}

func (r *Router) labelsPDF(w http.ResponseWriter, req *http.Request) {
	products, ok := r.loadCatalog(w, req)
	if !ok {
		return
	}

	layout := report.DefaultLabelLayout
	if r.labels.Cols > 0 {
		layout.Cols = r.labels.Cols
	}
	if r.labels.Rows > 0 {
		layout.Rows = r.labels.Rows
	}
	if r.labels.MarginTop > 0 {
		layout.MarginTop = r.labels.MarginTop
	}
	if r.labels.MarginLeft > 0 {
		layout.MarginLeft = r.labels.MarginLeft
	}

	data, err := report.BuildLabelsPDF(products, layout)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	attachment(w, "labels.pdf", "application/pdf")
	w.Write(data)
}
