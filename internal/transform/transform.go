// Package transform derives the label graph for a source document by running
// an ordered registry of independent rules.
package transform

import (
	"fmt"
	"time"

	"github.com/policygraph/labeldex/internal/domain/label"
	"github.com/policygraph/labeldex/internal/domain/source"
)

// Rule derives zero or more label relationships from one source document.
// Rules are pure: no side effects, no dependency on other rules' output. The
// derivation instant is injected so repeated evaluation differs only in the
// timestamps the caller supplies.
type Rule func(doc source.Document, at time.Time) ([]label.Relationship, error)

// Descriptor registers a rule together with its name and the graph path it
// consumes. DiagramEdge is documentation metadata rendered into the operator
// diagram; it never affects transform output.
type Descriptor struct {
	Name        string
	Evaluate    Rule
	DiagramEdge string
}

// Transformer maps a source document to its labelled form and exposes the
// rule registry for diagram rendering.
type Transformer interface {
	Transform(doc source.Document) (label.Document, error)
	Rules() []Descriptor
}

// Engine evaluates its registered rules in registration order and
// concatenates their output. It does not catch per-rule failures -- a rule
// error aborts the whole document's transform -- and it does not deduplicate;
// duplicate facts collapse in the persistence layer, not here.
type Engine struct {
	rules []Descriptor
	now   func() time.Time
}

var _ Transformer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the derivation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine over the given rule registry.
func NewEngine(rules []Descriptor, opts ...Option) *Engine {
	e := &Engine{rules: rules, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transform runs every registered rule against doc and returns the labelled
// document. All relationships from one invocation share a single derivation
// timestamp.
func (e *Engine) Transform(doc source.Document) (label.Document, error) {
	at := e.now()
	var labels []label.Relationship
	for _, r := range e.rules {
		out, err := r.Evaluate(doc, at)
		if err != nil {
			return label.Document{}, fmt.Errorf("rule %s on document %s: %w", r.Name, doc.ID, err)
		}
		labels = append(labels, out...)
	}
	return label.Document{ID: doc.ID, Title: doc.Title, Labels: labels}, nil
}

// Rules returns the registry in registration order.
func (e *Engine) Rules() []Descriptor {
	return e.rules
}
