// Package domain holds cross-cutting domain types and sentinel errors.
package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing labelled document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrMissingStructure signals a mandatory nested field absent on a source
	// document; fatal to that document's transform.
	ErrMissingStructure = errors.New("missing required structure")
	// ErrIndexQuery signals a search index query failure; fatal to the whole
	// search request, no partial results.
	ErrIndexQuery = errors.New("index query failed")
	// ErrInvalidInput signals a malformed client-supplied value.
	ErrInvalidInput = errors.New("invalid input")
)
