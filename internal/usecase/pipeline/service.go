// Package pipeline sequences the extract, transform, persist and feed steps
// over a batch of source documents.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/policygraph/labeldex/internal/metrics"
)

// Stats summarizes one pipeline run.
type Stats struct {
	RunID         string
	Documents     int
	Relationships int
}

// Service runs the label derivation pipeline.
type Service struct {
	source      Source
	transformer Transformer
	store       Store
	feed        FeedWriter
	logger      *zap.Logger
}

// New creates a pipeline service. store and feed may be nil to skip the
// corresponding step (e.g. a feed-only run).
func New(src Source, t Transformer, store Store, feed FeedWriter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: src, transformer: t, store: store, feed: feed, logger: logger}
}

// Run reads every source document, derives its label graph, persists it and
// appends it to the feed. A transform failure is terminal for the run: no
// partial label graph is emitted for the failing document and the error names
// it for triage.
func (s *Service) Run(ctx context.Context) (Stats, error) {
	stats := Stats{RunID: uuid.NewString()}
	logger := s.logger.With(zap.String("run_id", stats.RunID))

	docs, err := s.source.Read(ctx)
	if err != nil {
		return stats, fmt.Errorf("read source documents: %w", err)
	}
	logger.Info("pipeline started", zap.Int("source_documents", len(docs)))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("pipeline canceled: %w", err)
		}

		labelled, err := s.transformer.Transform(doc)
		if err != nil {
			metrics.DocumentsTransformedTotal.WithLabelValues("error").Inc()
			return stats, fmt.Errorf("transform document %s: %w", doc.ID, err)
		}
		metrics.DocumentsTransformedTotal.WithLabelValues("success").Inc()
		for _, rel := range labelled.Labels {
			metrics.LabelRelationshipsTotal.WithLabelValues(rel.Relationship).Inc()
		}

		if s.store != nil {
			if err := s.store.Replace(ctx, labelled); err != nil {
				return stats, fmt.Errorf("persist document %s: %w", doc.ID, err)
			}
		}
		if s.feed != nil {
			if err := s.feed.Write(labelled); err != nil {
				return stats, fmt.Errorf("feed document %s: %w", doc.ID, err)
			}
		}

		stats.Documents++
		stats.Relationships += len(labelled.Labels)
	}

	logger.Info("pipeline finished",
		zap.Int("documents", stats.Documents),
		zap.Int("relationships", stats.Relationships),
	)
	return stats, nil
}
