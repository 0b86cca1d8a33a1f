package server

import (
	"encoding/json"
	"net/http"
)

// ResolveRequest is the body of POST /resolve.
type ResolveRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=500,dive,required"`
}

// handleResolve resolves a batch of raw names against the current alias
// table and client set.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	snapshot, err := s.db.LoadSnapshot(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	results := snapshot.ResolveAll(req.Names)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}
