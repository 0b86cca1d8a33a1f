package server

import (
	"net/http"
	"strconv"

	"github.com/jimmy/client-registry/internal/backfill"
	"github.com/jimmy/client-registry/internal/db"
)

// handleBackfill runs one fact table's backfill batch and returns the report.
// ?dry_run=true resolves and reports without writing anything.
func (s *Server) handleBackfill(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")
	if !db.IsFactTable(table) {
		s.errorResponse(w, http.StatusBadRequest, "Unknown fact table: "+table)
		return
	}

	dryRun := false
	if v := r.URL.Query().Get("dry_run"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid dry_run parameter")
			return
		}
		dryRun = parsed
	}

	snapshot, err := s.db.LoadSnapshot(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	report, err := backfill.Run(r.Context(), s.db, snapshot, table, backfill.Options{DryRun: dryRun})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Backfill failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}
