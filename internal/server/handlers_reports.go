package server

import (
	"net/http"

	"github.com/jimmy/client-registry/internal/db"
)

// handleUnmatchedReport lists the distinct unlinked raw names per fact table.
// ?table=X restricts the report to one table.
func (s *Server) handleUnmatchedReport(w http.ResponseWriter, r *http.Request) {
	tables := db.FactTables
	if t := r.URL.Query().Get("table"); t != "" {
		if !db.IsFactTable(t) {
			s.errorResponse(w, http.StatusBadRequest, "Unknown fact table: "+t)
			return
		}
		tables = []string{t}
	}

	unmatched := make(map[string][]db.NameCount, len(tables))
	total := 0
	for _, table := range tables {
		names, err := s.db.UnlinkedNames(r.Context(), table)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
		unmatched[table] = names
		total += len(names)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"unmatched":   unmatched,
		"total_names": total,
	})
}
