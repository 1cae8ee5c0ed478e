package chi

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/policygraph/labeldex/internal/domain"
	"github.com/policygraph/labeldex/internal/domain/label"
	"github.com/policygraph/labeldex/internal/domain/query"
	documentuc "github.com/policygraph/labeldex/internal/usecase/document"
	healthuc "github.com/policygraph/labeldex/internal/usecase/health"
	searchuc "github.com/policygraph/labeldex/internal/usecase/search"
)

type mockRepo struct {
	docs map[string]label.Document
}

func newMockRepo() *mockRepo {
	return &mockRepo{docs: make(map[string]label.Document)}
}

func (m *mockRepo) Replace(_ context.Context, doc label.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (label.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return label.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *mockRepo) List(_ context.Context, page, pageSize int) ([]label.Document, int, error) {
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	start := (page - 1) * pageSize
	if start > len(ids) {
		start = len(ids)
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}

	docs := make([]label.Document, 0, end-start)
	for _, id := range ids[start:end] {
		docs = append(docs, m.docs[id])
	}
	return docs, len(ids), nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	return len(m.docs), nil
}

type mockIndex struct {
	mu      sync.Mutex
	queries []string
	err     error
}

func (m *mockIndex) Query(_ context.Context, yql string) (json.RawMessage, error) {
	m.mu.Lock()
	m.queries = append(m.queries, yql)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return json.RawMessage(`{"root":{}}`), nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type fixture struct {
	repo        *mockRepo
	index       *mockIndex
	dbPinger    *mockPinger
	indexPinger *mockPinger
	router      chi.Router
}

func newFixture() *fixture {
	f := &fixture{
		repo:        newMockRepo(),
		index:       &mockIndex{},
		dbPinger:    &mockPinger{},
		indexPinger: &mockPinger{},
	}

	logger := zap.NewNop()
	builder := query.NewBuilder(100, 10000, []string{"Case"})
	server := NewServer(
		documentuc.New(f.repo),
		searchuc.New(f.index, builder, logger),
		healthuc.New(f.dbPinger, f.indexPinger),
		logger,
	)

	f.router = chi.NewRouter()
	server.Routes(f.router)
	return f
}
