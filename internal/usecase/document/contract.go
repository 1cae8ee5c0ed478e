package document

import (
	"context"

	"github.com/policygraph/labeldex/internal/domain/label"
)

// Repository defines the storage contract for labelled documents.
type Repository interface {
	Replace(ctx context.Context, doc label.Document) error
	Get(ctx context.Context, id string) (label.Document, error)
	List(ctx context.Context, page, pageSize int) ([]label.Document, int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
