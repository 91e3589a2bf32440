package server

import (
	"net/http"

	"github.com/querysim/querysim/internal/errors"
)

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type queryRequest struct {
	Query string `json:"query" validate:"required,min=1"`
}

type healthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	DatabaseStatus string `json:"database_status"`
}

// Version is stamped at build time.
var Version = "dev"

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if !s.decode(w, r, &req) {
		return
	}

	token, err := s.auth.Issue(req.Username, req.Password)
	if err != nil {
		s.logger.WithField("username", req.Username).Warn("token request rejected")
		w.Header().Set("WWW-Authenticate", "Bearer")
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "incorrect username or password")

		return
	}

	s.respondJSON(w, http.StatusOK, token)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.svc.Process(req.Query)
	if err != nil {
		s.mapCoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.respondJSON(w, http.StatusOK, s.svc.Explain(req.Query))
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if !s.decode(w, r, &req) {
		return
	}

	s.respondJSON(w, http.StatusOK, s.svc.Validate(req.Query))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:         "healthy",
		Version:        Version,
		DatabaseStatus: s.warehouseStatus(r.Context()),
	})
}

// mapCoreError translates core error types to status codes. Anything the
// core did not classify surfaces as a generic client error.
func (s *Server) mapCoreError(w http.ResponseWriter, err error) {
	switch errors.GetType(err) {
	case errors.ErrTypeRegistry, errors.ErrTypeInternal:
		s.logger.WithError(err).Error("internal failure while processing query")
		s.respondError(w, http.StatusInternalServerError, "INTERNAL", "internal processing failure")
	default:
		s.respondError(w, http.StatusBadRequest, "QUERY_ERROR", err.Error())
	}
}
