// Package chi is the thin HTTP surface over the document and search services.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/policygraph/labeldex/internal/domain"
	"github.com/policygraph/labeldex/internal/domain/label"
	documentuc "github.com/policygraph/labeldex/internal/usecase/document"
	healthuc "github.com/policygraph/labeldex/internal/usecase/health"
	searchuc "github.com/policygraph/labeldex/internal/usecase/search"
)

// Server exposes the HTTP API.
type Server struct {
	documents *documentuc.Service
	search    *searchuc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{documents: documents, search: search, health: health, logger: logger}
}

// Routes registers the API routes on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/documents", s.listDocuments)
	r.Get("/documents/{id}", s.getDocument)
	r.Put("/documents/{id}", s.putDocument)
	r.Get("/search", s.searchDocuments)
	r.Get("/healthz", s.healthz)
}

// listResponse is the paged list envelope.
type listResponse struct {
	Data     []label.Document `json:"data"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// itemResponse is the single item envelope. Data is null for a missing
// document; a lookup miss is not an error.
type itemResponse struct {
	Data *label.Document `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// listDocuments handles GET /documents.
func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	pageSize := intQuery(r, "page_size", 0)

	docs, total, err := s.documents.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if docs == nil {
		docs = []label.Document{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Data:     docs,
		Total:    total,
		Page:     page,
		PageSize: len(docs),
	})
}

// getDocument handles GET /documents/{id}.
func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	doc, err := s.documents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			writeJSON(w, http.StatusOK, itemResponse{Data: nil})
			return
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemResponse{Data: &doc})
}

// putDocument handles PUT /documents/{id}: a full-replace upsert of the
// document's label graph.
func (s *Server) putDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc label.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	if doc.ID == "" {
		doc.ID = id
	}
	if doc.ID != id {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "document id does not match path"})
		return
	}

	if err := s.documents.Replace(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, itemResponse{Data: &doc})
}

// searchDocuments handles GET /search. labels and relationships are repeated
// query parameters, each an "op:value" or bare-value filter.
func (s *Server) searchDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := s.search.Search(r.Context(), q["labels"], q["relationships"])
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// healthz handles GET /healthz.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrIndexQuery):
		s.logger.Error("index query failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
