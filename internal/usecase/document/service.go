// Package document exposes labelled document persistence operations to the
// transport layer.
package document

import (
	"context"
	"fmt"

	"github.com/policygraph/labeldex/internal/domain"
	"github.com/policygraph/labeldex/internal/domain/label"
)

// Service handles labelled document reads and full-replace upserts.
type Service struct {
	repo            Repository
	defaultPageSize int
	maxPageSize     int
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Replace performs a full-replace upsert: prior label relationships for the
// document id are discarded and the supplied set stored.
func (s *Service) Replace(ctx context.Context, doc label.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document id is required: %w", domain.ErrInvalidInput)
	}
	if err := s.repo.Replace(ctx, doc); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Get returns a labelled document by id. A missing document surfaces as
// domain.ErrDocumentNotFound, which the transport renders as a null item
// rather than a failure.
func (s *Service) Get(ctx context.Context, id string) (label.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return label.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns one page of labelled documents and the total count. Page
// defaults to 1 and pageSize is clamped to the configured limits.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]label.Document, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	docs, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	return docs, total, nil
}
