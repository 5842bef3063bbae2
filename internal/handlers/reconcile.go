package handlers

import (
	"log"
	"net/http"

	"github.com/invtally/invtally/internal/reconcile"
	"github.com/invtally/invtally/internal/websocket"
)

// runReconcile accepts a multipart CSV upload and syncs it into the catalog.
// The "mode" form field selects copy or full-sync; copy is the default.
func (r *Router) runReconcile(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing CSV file")
		return
	}
	defer file.Close()

	mode := reconcile.ModeCopy
	if raw := req.FormValue("mode"); raw != "" {
		mode, err = reconcile.ParseMode(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	log.Printf("🔄 Reconciling %s (mode=%s)", header.Filename, mode)
	report, err := r.reconciler.Sync(req.Context(), file, mode)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	log.Printf("✅ Reconcile %s: %s", report.RunID, report.Summary())
	r.hub.Broadcast(websocket.CatalogChanged("reconcile"))
	respondJSON(w, http.StatusOK, report)
}
