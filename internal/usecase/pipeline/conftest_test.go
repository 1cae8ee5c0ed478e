package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/policygraph/labeldex/internal/domain/label"
	"github.com/policygraph/labeldex/internal/domain/source"
	"github.com/policygraph/labeldex/internal/transform"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type mockSource struct {
	docs []source.Document
	err  error
}

func (m *mockSource) Read(_ context.Context) ([]source.Document, error) {
	return m.docs, m.err
}

// mockTransformer labels every document with one Family relationship and
// fails on ids listed in failOn.
type mockTransformer struct {
	failOn map[string]bool
}

func (m *mockTransformer) Transform(doc source.Document) (label.Document, error) {
	if m.failOn[doc.ID] {
		return label.Document{}, errors.New("rule family on document " + doc.ID + ": boom")
	}
	return label.Document{
		ID:    doc.ID,
		Title: doc.Title,
		Labels: []label.Relationship{
			{
				Label:        label.New(label.TypeFamily, "fam."+doc.ID, "Fam "+doc.ID),
				Relationship: label.RelPartOf,
				Timestamp:    testTime,
			},
		},
	}, nil
}

func (m *mockTransformer) Rules() []transform.Descriptor { return nil }

type mockStore struct {
	replaced []label.Document
	err      error
}

func (m *mockStore) Replace(_ context.Context, doc label.Document) error {
	if m.err != nil {
		return m.err
	}
	m.replaced = append(m.replaced, doc)
	return nil
}

type mockFeed struct {
	written []label.Document
	err     error
}

func (m *mockFeed) Write(doc label.Document) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, doc)
	return nil
}

func sourceDocs(ids ...string) []source.Document {
	docs := make([]source.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, source.Document{ID: id, Title: "Doc " + id})
	}
	return docs
}
