// Package document persists labelled documents and their label catalog.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/policygraph/labeldex/internal/db"
	"github.com/policygraph/labeldex/internal/domain"
	"github.com/policygraph/labeldex/internal/domain/label"
)

// store is the consumer interface for the document repository (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a document repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// Replace stores a labelled document with full-replace semantics: the new
// label set overwrites whatever relationships were stored before, and every
// label is upserted into the catalog by id. Duplicate (label id, relationship)
// pairs coming out of the transform collapse here, last write wins -- mirrors
// upsert-by-primary-key in the link table this store replaces.
func (r *Repo) Replace(ctx context.Context, doc label.Document) error {
	stored := doc
	stored.Labels = dedupeLinks(doc.Labels)

	for _, rel := range stored.Labels {
		if err := r.upsertLabel(ctx, rel.Label); err != nil {
			return err
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID, err)
	}
	key := r.docKey(doc.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, r.idsKey(), doc.ID); err != nil {
		return fmt.Errorf("index id %s: %w", doc.ID, err)
	}
	return nil
}

// Get returns a labelled document by id.
func (r *Repo) Get(ctx context.Context, id string) (label.Document, error) {
	key := r.docKey(id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return label.Document{}, domain.ErrDocumentNotFound
		}
		return label.Document{}, fmt.Errorf("json.get %s: %w", key, err)
	}

	var doc label.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return label.Document{}, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	return doc, nil
}

// List returns one page of labelled documents ordered by id, plus the total
// document count. Page numbering starts at 1.
func (r *Repo) List(ctx context.Context, page, pageSize int) ([]label.Document, int, error) {
	ids, err := r.store.SMembers(ctx, r.idsKey())
	if err != nil {
		return nil, 0, fmt.Errorf("list ids: %w", err)
	}
	sort.Strings(ids)
	total := len(ids)

	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	docs := make([]label.Document, 0, end-start)
	for _, id := range ids[start:end] {
		doc, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrDocumentNotFound) {
				continue
			}
			return nil, 0, err
		}
		docs = append(docs, doc)
	}
	return docs, total, nil
}

// Delete removes a labelled document and its id index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.docKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.SRem(ctx, r.idsKey(), id); err != nil {
		return fmt.Errorf("unindex id %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, r.idsKey())
	if err != nil {
		return 0, fmt.Errorf("count ids: %w", err)
	}
	return int(n), nil
}

// upsertLabel writes a label into the catalog keyed by label id. Labels are
// immutable so rewriting an existing one is a no-op in effect.
func (r *Repo) upsertLabel(ctx context.Context, l label.Label) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal label %s: %w", l.ID, err)
	}
	key := r.labelKey(l.ID)
	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

func (r *Repo) docKey(id string) string {
	return r.keyPrefix + "doc:" + id
}

func (r *Repo) labelKey(id string) string {
	return r.keyPrefix + "label:" + id
}

func (r *Repo) idsKey() string {
	return r.keyPrefix + "docs"
}

// dedupeLinks collapses duplicate (label id, relationship) pairs keeping the
// last occurrence's timestamp and the first occurrence's position.
func dedupeLinks(links []label.Relationship) []label.Relationship {
	type linkKey struct {
		labelID      string
		relationship string
	}

	pos := make(map[linkKey]int, len(links))
	out := make([]label.Relationship, 0, len(links))
	for _, rel := range links {
		k := linkKey{rel.Label.ID, rel.Relationship}
		if i, ok := pos[k]; ok {
			out[i] = rel
			continue
		}
		pos[k] = len(out)
		out = append(out, rel)
	}
	return out
}
