package web

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/logging"
)

// handleExport streams the full record list for a category as a CSV
// attachment. An unknown category is rejected explicitly rather than
// producing an empty file.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	cat, err := core.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.Error(w, core.MapError(err).String(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, core.ExportFileName(cat)))

	if err := s.service.ExportCSV(r.Context(), cat, w); err != nil {
		// Headers are already sent; log and abort mid-stream.
		logging.FromContext(r.Context()).Error("export failed",
			"category", cat, "error", err)
	}
}
