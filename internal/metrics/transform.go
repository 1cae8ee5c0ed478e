package metrics

import "github.com/prometheus/client_golang/prometheus"

// Transform pipeline and index client metrics. Registered explicitly from the
// composition root (no init()) so tests importing this package stay clean.
var (
	// DocumentsTransformedTotal counts transform invocations by outcome.
	DocumentsTransformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labeldex",
			Name:      "documents_transformed_total",
			Help:      "Total number of document transforms",
		},
		[]string{"status"},
	)

	// LabelRelationshipsTotal counts emitted label relationships by verb.
	LabelRelationshipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labeldex",
			Name:      "label_relationships_total",
			Help:      "Total number of label relationships derived",
		},
		[]string{"relationship"},
	)

	// IndexQueriesTotal counts search index queries by kind and outcome.
	IndexQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labeldex",
			Name:      "index_queries_total",
			Help:      "Total number of search index queries",
		},
		[]string{"kind", "status"},
	)

	// IndexQueryDuration observes search index query latency by kind.
	IndexQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labeldex",
			Name:      "index_query_duration_seconds",
			Help:      "Search index query duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)
)

// RegisterTransformMetrics registers pipeline and index metrics.
func RegisterTransformMetrics() {
	prometheus.MustRegister(DocumentsTransformedTotal)
	prometheus.MustRegister(LabelRelationshipsTotal)
	prometheus.MustRegister(IndexQueriesTotal)
	prometheus.MustRegister(IndexQueryDuration)
}
