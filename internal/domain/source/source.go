// Package source models the upstream document structure the transform rules
// read: a physical document nested under a family document, family, corpus and
// corpus type, with geography and free-form metadata attached to the family.
package source

import (
	"fmt"

	"github.com/policygraph/labeldex/internal/domain"
)

// Document is one physical document from the upstream source. The source
// collaborator guarantees a non-empty SourceURL and a family document; records
// violating that are filtered out before they reach the rules.
type Document struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	SourceURL      string          `json:"source_url"`
	FamilyDocument *FamilyDocument `json:"family_document"`
}

// FamilyDocument links a physical document to its family and carries the
// validated metadata fields.
type FamilyDocument struct {
	ValidMetadata map[string][]string `json:"valid_metadata"`
	Family        *Family             `json:"family"`
}

// Family groups documents. Title and Name differ: Title is the display title
// used for project/case labels, Name is the family's own name.
type Family struct {
	ImportID    string      `json:"import_id"`
	Title       string      `json:"title"`
	Name        string      `json:"name"`
	Corpus      Corpus      `json:"corpus"`
	Geographies []Geography `json:"geographies"`
	Metadata    Metadata    `json:"metadata"`
}

// Corpus is the collection a family belongs to.
type Corpus struct {
	CorpusType CorpusType `json:"corpus_type"`
}

// CorpusType categorizes a corpus, e.g. "Litigation" or a fund acronym.
type CorpusType struct {
	Name string `json:"name"`
}

// Geography is one geography value attached to a family.
type Geography struct {
	Value string `json:"value"`
}

// Metadata is unstructured family metadata (multi-valued string fields).
type Metadata struct {
	Value map[string][]string `json:"value"`
}

// FamilyOf returns the document's family, or ErrMissingStructure when the
// family document chain is absent. Rules that require the family fail the
// whole transform through this.
func (d Document) FamilyOf() (*Family, error) {
	if d.FamilyDocument == nil || d.FamilyDocument.Family == nil {
		return nil, fmt.Errorf("document %s has no family: %w", d.ID, domain.ErrMissingStructure)
	}
	return d.FamilyDocument.Family, nil
}

// CorpusTypeName returns the corpus type name for the document's family.
// An absent family or empty corpus type name is a missing required structure.
func (d Document) CorpusTypeName() (string, error) {
	fam, err := d.FamilyOf()
	if err != nil {
		return "", err
	}
	name := fam.Corpus.CorpusType.Name
	if name == "" {
		return "", fmt.Errorf("document %s has no corpus type: %w", d.ID, domain.ErrMissingStructure)
	}
	return name, nil
}

// ValidMetadata returns the validated metadata values for a field, or nil when
// the field (or the family document itself) is absent. Optional structure
// missing means zero facts, not an error.
func (d Document) ValidMetadata(field string) []string {
	if d.FamilyDocument == nil {
		return nil
	}
	return d.FamilyDocument.ValidMetadata[field]
}
