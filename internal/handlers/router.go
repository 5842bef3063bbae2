package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/invtally/invtally/internal/buildinfo"
	"github.com/invtally/invtally/internal/config"
	"github.com/invtally/invtally/internal/grid"
	"github.com/invtally/invtally/internal/reconcile"
	"github.com/invtally/invtally/internal/services/catalog"
	"github.com/invtally/invtally/internal/store"
	"github.com/invtally/invtally/internal/websocket"
)

// Router wraps the mux router and the application components behind the
// JSON API. It is a thin wrapper: every behavior lives in the core
// packages, the handlers only decode, dispatch and encode.
type Router struct {
	*mux.Router
	store      store.ProductStore
	catalog    *catalog.Service
	reconciler *reconcile.Reconciler
	hub        *websocket.Hub
	labels     config.LabelConfig
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(st store.ProductStore, svc *catalog.Service, rec *reconcile.Reconciler, hub *websocket.Hub, labels config.LabelConfig) *Router {
	r := &Router{
		Router:     mux.NewRouter(),
		store:      st,
		catalog:    svc,
		reconciler: rec,
		hub:        hub,
		labels:     labels,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Catalog routes
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/products", r.createProduct).Methods("POST")
	api.HandleFunc("/products/{id}", r.getProduct).Methods("GET")
	api.HandleFunc("/products/{id}", r.deleteProduct).Methods("DELETE")
	api.HandleFunc("/products/{id}/field", r.updateField).Methods("PUT")
	api.HandleFunc("/products/{id}/stock", r.addStock).Methods("POST")
	api.HandleFunc("/stats", r.getStats).Methods("GET")

	// Reconciliation
	api.HandleFunc("/reconcile", r.runReconcile).Methods("POST")

	// Reports
	api.HandleFunc("/reports/catalog.csv", r.catalogCSV).Methods("GET")
	api.HandleFunc("/reports/catalog.pdf", r.catalogPDF).Methods("GET")
	api.HandleFunc("/reports/mismatch.csv", r.mismatchCSV).Methods("GET")
	api.HandleFunc("/reports/mismatch.pdf", r.mismatchPDF).Methods("GET")
	api.HandleFunc("/reports/labels.pdf", r.labelsPDF).Methods("GET")

	// View attach point for live refresh events
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWS(r.hub, w, req)
	}).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns build and runtime information
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "running",
		"commit":     buildinfo.CommitHash,
		"built_at":   buildinfo.BuildTime,
		"started_at": buildinfo.StartTime,
		"views":      r.hub.ClientCount(),
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondStoreError maps core error kinds onto HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, store.ErrDuplicateCode):
		respondError(w, http.StatusConflict, "Product code already exists")
	case errors.Is(err, grid.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
