package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/invtally/invtally/internal/services/catalog"
	"github.com/invtally/invtally/internal/websocket"
)

func parseID(req *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
}

// listProducts returns the catalog, optionally filtered by ?q=term.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	products, err := r.catalog.Search(req.Context(), req.URL.Query().Get("q"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// createProduct adds a manual catalog entry
func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var in catalog.NewProductInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := r.catalog.AddProduct(req.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNameRequired),
			errors.Is(err, catalog.ErrCodeRequired),
			errors.Is(err, catalog.ErrNegativeStock):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondStoreError(w, err)
		}
		return
	}

	r.hub.Broadcast(websocket.CatalogChanged("create"))
	respondJSON(w, http.StatusCreated, p)
}

// getProduct returns a single product by id
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	p, err := r.store.Get(req.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// deleteProduct removes a product by id
func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := r.catalog.DeleteProduct(req.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	r.hub.Broadcast(websocket.CatalogChanged("delete"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// updateField applies a single-cell edit: {"column": "good_qty", "value": "7"}
func (r *Router) updateField(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var body struct {
		Column string `json:"column"`
		Value  string `json:"value"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := r.catalog.UpdateField(req.Context(), id, body.Column, body.Value)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	r.hub.Broadcast(websocket.CatalogChanged("edit"))
	respondJSON(w, http.StatusOK, p)
}

// addStock merges additive quantities into an existing product
func (r *Router) addStock(w http.ResponseWriter, req *http.Request) {
	id, err := parseID(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var in catalog.StockInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := r.catalog.AddStock(req.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrNegativeStock), errors.Is(err, catalog.ErrEmptyStock):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondStoreError(w, err)
		}
		return
	}

	r.hub.Broadcast(websocket.CatalogChanged("stock"))
	respondJSON(w, http.StatusOK, p)
}

// getStats returns the summary totals shown above the grid
func (r *Router) getStats(w http.ResponseWriter, req *http.Request) {
	products, err := r.store.List(req.Context(), "")
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, catalog.Stats(products))
}
