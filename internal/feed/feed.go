// Package feed serializes labelled documents into the bulk-load artifact the
// index loader consumes: one put/fields envelope per line.
package feed

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/policygraph/labeldex/internal/domain/label"
)

// PutDocument wraps a labelled document with its index identifier. The fields
// key set must match the label.Document shape exactly; the loader maps it onto
// the index schema.
type PutDocument struct {
	Put    string         `json:"put"`
	Fields label.Document `json:"fields"`
}

// PutID builds the index document identifier "id:<namespace>:<doctype>::<id>".
func PutID(namespace, doctype, id string) string {
	return fmt.Sprintf("id:%s:%s::%s", namespace, doctype, id)
}

// Writer emits one JSON envelope per line.
type Writer struct {
	enc       *json.Encoder
	namespace string
	doctype   string
}

// NewWriter creates a feed writer targeting the given index namespace and
// document type.
func NewWriter(w io.Writer, namespace, doctype string) *Writer {
	return &Writer{enc: json.NewEncoder(w), namespace: namespace, doctype: doctype}
}

// Write appends one labelled document to the feed.
func (w *Writer) Write(doc label.Document) error {
	envelope := PutDocument{
		Put:    PutID(w.namespace, w.doctype, doc.ID),
		Fields: doc,
	}
	if err := w.enc.Encode(envelope); err != nil {
		return fmt.Errorf("encode feed document %s: %w", doc.ID, err)
	}
	return nil
}
