package health

import "context"

// DBPinger checks database connectivity.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexPinger checks search index availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}
