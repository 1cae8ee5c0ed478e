package pipeline

import (
	"context"

	"github.com/policygraph/labeldex/internal/domain/label"
	"github.com/policygraph/labeldex/internal/domain/source"
	"github.com/policygraph/labeldex/internal/transform"
)

// Source supplies the documents to transform. The collaborator filters out
// records lacking a source locator or a family before they get here.
type Source interface {
	Read(ctx context.Context) ([]source.Document, error)
}

// Store persists label graphs with full-replace semantics.
type Store interface {
	Replace(ctx context.Context, doc label.Document) error
}

// FeedWriter appends labelled documents to the index feed artifact.
type FeedWriter interface {
	Write(doc label.Document) error
}

// Transformer is re-exported for wiring clarity.
type Transformer = transform.Transformer
