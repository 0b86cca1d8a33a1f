package server

import (
	"encoding/json"
	"net/http"
)

// ClientRequest is the body of POST /clients.
type ClientRequest struct {
	Name string `json:"name" validate:"required,min=1,max=500"`
}

// handleListClients lists all canonical clients
func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.db.ListClients(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"clients": clients,
		"count":   len(clients),
	})
}

// handleCreateClient registers a canonical client, reusing an existing row
// when the normalized name already exists.
func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	client, err := s.db.FindOrCreateClient(r.Context(), req.Name)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, client)
}
