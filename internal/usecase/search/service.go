// Package search is the faceted query facade: it compiles the facet filters,
// builds the document and grouping queries and executes both against the
// index.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/policygraph/labeldex/internal/domain"
	"github.com/policygraph/labeldex/internal/domain/query"
	"github.com/policygraph/labeldex/internal/metrics"
)

// Query kinds for instrumentation and failure attribution.
const (
	kindDocuments = "documents"
	kindGroups    = "groups"
)

// Result carries both result sets verbatim. There is no partial-success
// shape: either both queries succeeded or the whole call failed.
type Result struct {
	Documents json.RawMessage `json:"documents"`
	Groups    json.RawMessage `json:"groups"`
}

// Service executes faceted searches.
type Service struct {
	index   Index
	builder *query.Builder
	logger  *zap.Logger
}

// New creates a search service.
func New(index Index, builder *query.Builder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{index: index, builder: builder, logger: logger}
}

// Search compiles the raw label and relationship filters into predicates,
// builds the two final queries and issues them concurrently. Neither query
// depends on the other, so they fan out and the call completes when both
// return. If either fails the whole request fails and both result sets are
// withheld.
func (s *Service) Search(ctx context.Context, labels, relationships []string) (Result, error) {
	labelsWhere := query.Compile(query.FieldLabelIDs, query.ParseTokens(labels))
	relationshipsWhere := query.Compile(query.FieldLabelRelationships, query.ParseTokens(relationships))

	documentsYQL := s.builder.DocumentQuery(labelsWhere, relationshipsWhere)
	groupsYQL := s.builder.GroupingQuery(labelsWhere, relationshipsWhere)

	s.logger.Debug("compiled queries",
		zap.String("documents_yql", documentsYQL),
		zap.String("groups_yql", groupsYQL),
	)

	type outcome struct {
		kind    string
		payload json.RawMessage
		err     error
	}

	results := make(chan outcome, 2)
	run := func(kind, yql string) {
		payload, err := s.execute(ctx, kind, yql)
		results <- outcome{kind: kind, payload: payload, err: err}
	}
	go run(kindDocuments, documentsYQL)
	go run(kindGroups, groupsYQL)

	var res Result
	for i := 0; i < 2; i++ {
		o := <-results
		if o.err != nil {
			return Result{}, fmt.Errorf("%s query: %w: %w", o.kind, domain.ErrIndexQuery, o.err)
		}
		switch o.kind {
		case kindDocuments:
			res.Documents = o.payload
		case kindGroups:
			res.Groups = o.payload
		}
	}
	return res, nil
}

func (s *Service) execute(ctx context.Context, kind, yql string) (json.RawMessage, error) {
	start := time.Now()
	payload, err := s.index.Query(ctx, yql)
	metrics.IndexQueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.IndexQueriesTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}
	metrics.IndexQueriesTotal.WithLabelValues(kind, "success").Inc()
	return payload, nil
}
