package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jimmy/client-registry/internal/db"
)

// AliasRequest is the body of POST /aliases.
type AliasRequest struct {
	DisplayName   string `json:"display_name" validate:"required,min=1,max=500"`
	CanonicalName string `json:"canonical_name" validate:"required,min=1,max=500"`
	Description   string `json:"description" validate:"max=2000"`
	IsActive      *bool  `json:"is_active"`
}

// handleListAliases lists alias mappings. ?active=true restricts the list to
// active ones.
func (s *Server) handleListAliases(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if v := r.URL.Query().Get("active"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid active parameter")
			return
		}
		activeOnly = parsed
	}

	aliases, err := s.db.ListAliases(r.Context(), activeOnly)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"aliases": aliases,
		"count":   len(aliases),
	})
}

// handleUpsertAlias creates or updates an alias mapping, last-write-wins on
// the display name.
func (s *Server) handleUpsertAlias(w http.ResponseWriter, r *http.Request) {
	var req AliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	inserted, err := s.db.UpsertAlias(r.Context(), db.AliasRecord{
		DisplayName:   req.DisplayName,
		CanonicalName: req.CanonicalName,
		Description:   req.Description,
		IsActive:      isActive,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	alias, err := s.db.GetAlias(r.Context(), req.DisplayName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, alias)
}

// handleDeactivateAlias soft-disables an alias without deleting its history.
func (s *Server) handleDeactivateAlias(w http.ResponseWriter, r *http.Request) {
	displayName := r.PathValue("display_name")
	if displayName == "" {
		s.errorResponse(w, http.StatusBadRequest, "Display name is required")
		return
	}

	alias, err := s.db.GetAlias(r.Context(), displayName)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if alias == nil {
		s.errorResponse(w, http.StatusNotFound, "Alias not found")
		return
	}

	if err := s.db.DeactivateAlias(r.Context(), displayName); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message":      "Alias deactivated",
		"display_name": alias.DisplayName,
	})
}
