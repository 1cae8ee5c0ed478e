// Package label holds the label graph value types produced by the transform
// rules and persisted/indexed downstream.
package label

import "time"

// Relationship verbs emitted by rules.
const (
	RelIs     = "is"
	RelPartOf = "part_of"
	RelAuthor = "author"
)

// Label types. A label id is "<Type>/<natural-key>".
const (
	TypeFamily                  = "Family"
	TypeProject                 = "Project"
	TypeCase                    = "Case"
	TypeGenre                   = "Genre"
	TypeMultilateralClimateFund = "MultilateralClimateFund"
	TypeDocumentType            = "DocumentType"
	TypeGeography               = "Geography"
	TypeAgent                   = "Agent"
)

// Label is a categorical tag entity. Immutable once created; identity is ID.
type Label struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// New creates a Label with the canonical "<Type>/<natural-key>" id.
func New(typ, key, title string) Label {
	return Label{ID: typ + "/" + key, Title: title, Type: typ}
}

// Relationship is a typed, timestamped edge from a document to a Label.
// Created exclusively by rule evaluation and never mutated afterwards.
// Timestamp records derivation time, not domain-event time.
type Relationship struct {
	Label        Label     `json:"label"`
	Relationship string    `json:"relationship"`
	Timestamp    time.Time `json:"timestamp"`
}

// Document is the label graph attached to one source document. Labels are in
// rule-application order and may contain duplicate (label id, relationship)
// pairs; persistence collapses those, the engine does not.
type Document struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Labels []Relationship `json:"labels"`
}
