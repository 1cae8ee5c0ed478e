package search

import (
	"context"
	"encoding/json"
)

// Index is the query contract with the external search index.
type Index interface {
	Query(ctx context.Context, yql string) (json.RawMessage, error)
}
