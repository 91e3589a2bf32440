// Package server is the thin transport collaborator in front of the
// analytics core: HTTP routing, bearer-token gating, request validation,
// and error-to-status-code mapping. The core knows nothing about any of it.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/querysim/querysim/internal/analytics"
	"github.com/querysim/querysim/internal/auth"
	"github.com/querysim/querysim/internal/logging"
	"github.com/querysim/querysim/internal/schema"
	"github.com/querysim/querysim/internal/storage"
)

const defaultMaxBodyBytes = 1 << 20

// Server holds the handler dependencies.
type Server struct {
	svc          *analytics.Service
	auth         *auth.Authenticator
	warehouse    *storage.Warehouse
	registry     *schema.Registry
	validate     *validator.Validate
	logger       *logging.Logger
	maxBodyBytes int64
}

// New wires up the transport layer. The warehouse may be nil when the server
// runs without a backing store; /health then reports it as absent.
func New(
	svc *analytics.Service,
	authn *auth.Authenticator,
	warehouse *storage.Warehouse,
	logger *logging.Logger,
	maxBodyBytes int64,
) *Server {
	if logger == nil {
		logger = logging.GetLogger()
	}

	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	return &Server{
		svc:          svc,
		auth:         authn,
		warehouse:    warehouse,
		registry:     svc.Registry(),
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// Handler builds the route table. All /api routes sit behind the bearer
// gate; /token and /health do not.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/query", s.requireToken(s.handleQuery))
	mux.HandleFunc("POST /api/explain", s.requireToken(s.handleExplain))
	mux.HandleFunc("POST /api/validate", s.requireToken(s.handleValidate))

	return limitBodySize(mux, s.maxBodyBytes)
}

// requireToken rejects requests without a valid bearer token.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || !s.auth.Verify(token) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "could not validate credentials")

			return
		}

		next(w, r)
	}
}

// limitBodySize caps request bodies before any handler reads them.
func limitBodySize(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}

		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// decode reads and validates a JSON request body.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body is not valid JSON")
		return false
	}

	if err := s.validate.Struct(dst); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "INVALID_PAYLOAD", err.Error())
		return false
	}

	return true
}

// Ping reports warehouse liveness, tolerating a nil warehouse.
func (s *Server) warehouseStatus(ctx context.Context) string {
	if s.warehouse == nil {
		return "absent"
	}

	if err := s.warehouse.Ping(ctx); err != nil {
		return "unreachable"
	}

	return "connected"
}
