package transform

import (
	"strings"
	"time"

	"github.com/policygraph/labeldex/internal/domain/label"
	"github.com/policygraph/labeldex/internal/domain/source"
)

// corporateFinanceCorpora are the corpus types treated as corporate finance
// projects, with their multilateral climate fund display names.
var corporateFinanceCorpora = map[string]string{
	"AF":  "Adaptation Fund",
	"CIF": "Climate Investment Fund",
	"GCF": "Green Climate Fund",
	"GEF": "Global Environment Facility",
}

const litigationCorpus = "Litigation"

// metadata fields read by rules.
const (
	metaDocumentType = "type"
	metaAuthor       = "author"
)

// DefaultRules is the production rule registry in registration order. The
// registry order determines the final label sequence order.
func DefaultRules() []Descriptor {
	return []Descriptor{
		{
			Name:        "family",
			Evaluate:    familyRule,
			DiagramEdge: "Document --> FamilyDocument --> Family -- .name --> FamilyLabel.title",
		},
		{
			Name:        "genre",
			Evaluate:    genreRule,
			DiagramEdge: "Document --> FamilyDocument --> Family --> Corpus --> CorpusType -- .name --> GenreLabel.title",
		},
		{
			Name:        "document_type",
			Evaluate:    documentTypeRule,
			DiagramEdge: "Document --> FamilyDocument -- .valid_metadata.type --> DocumentTypeLabel.title",
		},
		{
			Name:        "geography",
			Evaluate:    geographyRule,
			DiagramEdge: "Document --> FamilyDocument --> Family --> Geography -- .value --> GeographyLabel.title",
		},
		{
			Name:        "author",
			Evaluate:    authorRule,
			DiagramEdge: "Document --> FamilyDocument --> Family --> Metadata -- .author --> AgentLabel.title",
		},
	}
}

// familyRule always emits a part_of Family fact, plus part_of Project for
// corporate finance corpora and part_of Case for litigation. The conditions
// are not mutually exclusive.
func familyRule(doc source.Document, at time.Time) ([]label.Relationship, error) {
	corpusType, err := doc.CorpusTypeName()
	if err != nil {
		return nil, err
	}
	fam, err := doc.FamilyOf()
	if err != nil {
		return nil, err
	}

	var labels []label.Relationship
	if _, ok := corporateFinanceCorpora[corpusType]; ok {
		labels = append(labels, label.Relationship{
			Label:        label.New(label.TypeProject, fam.ImportID, fam.Title),
			Relationship: label.RelPartOf,
			Timestamp:    at,
		})
	}
	if corpusType == litigationCorpus {
		labels = append(labels, label.Relationship{
			Label:        label.New(label.TypeCase, fam.ImportID, fam.Title),
			Relationship: label.RelPartOf,
			Timestamp:    at,
		})
	}
	labels = append(labels, label.Relationship{
		Label:        label.New(label.TypeFamily, fam.ImportID, fam.Name),
		Relationship: label.RelPartOf,
		Timestamp:    at,
	})
	return labels, nil
}

// genreRule emits either the corporate finance pair (fixed Genre fact plus the
// fund the corpus belongs to) or a single Genre fact named after the corpus
// type. Exactly one branch fires.
func genreRule(doc source.Document, at time.Time) ([]label.Relationship, error) {
	corpusType, err := doc.CorpusTypeName()
	if err != nil {
		return nil, err
	}

	if fund, ok := corporateFinanceCorpora[corpusType]; ok {
		return []label.Relationship{
			{
				Label:        label.New(label.TypeGenre, "Corporate Finance Project", "Corporate Finance Project"),
				Relationship: label.RelIs,
				Timestamp:    at,
			},
			{
				Label:        label.New(label.TypeMultilateralClimateFund, fund, fund),
				Relationship: label.RelPartOf,
				Timestamp:    at,
			},
		}, nil
	}

	return []label.Relationship{
		{
			Label:        label.New(label.TypeGenre, corpusType, corpusType),
			Relationship: label.RelIs,
			Timestamp:    at,
		},
	}, nil
}

// documentTypeRule emits one is DocumentType fact per document type value.
// Legacy data encoded multiple values as a single comma-separated string, so
// every raw value is split on "," and each segment emitted on its own.
func documentTypeRule(doc source.Document, at time.Time) ([]label.Relationship, error) {
	var labels []label.Relationship
	for _, raw := range doc.ValidMetadata(metaDocumentType) {
		for _, docType := range strings.Split(raw, ",") {
			labels = append(labels, label.Relationship{
				Label:        label.New(label.TypeDocumentType, docType, docType),
				Relationship: label.RelIs,
				Timestamp:    at,
			})
		}
	}
	return labels, nil
}

// geographyRule emits one is Geography fact per geography on the document's
// family. Zero geographies means zero facts.
func geographyRule(doc source.Document, at time.Time) ([]label.Relationship, error) {
	fam, err := doc.FamilyOf()
	if err != nil {
		return nil, err
	}
	var labels []label.Relationship
	for _, geo := range fam.Geographies {
		labels = append(labels, label.Relationship{
			Label:        label.New(label.TypeGeography, geo.Value, geo.Value),
			Relationship: label.RelIs,
			Timestamp:    at,
		})
	}
	return labels, nil
}

// authorRule emits one author Agent fact per author in the family's
// unstructured metadata. Missing metadata means zero facts.
func authorRule(doc source.Document, at time.Time) ([]label.Relationship, error) {
	fam, err := doc.FamilyOf()
	if err != nil {
		return nil, err
	}
	var labels []label.Relationship
	for _, author := range fam.Metadata.Value[metaAuthor] {
		labels = append(labels, label.Relationship{
			Label:        label.New(label.TypeAgent, author, author),
			Relationship: label.RelAuthor,
			Timestamp:    at,
		})
	}
	return labels, nil
}
