// Package source reads physical documents from a JSONL export of the
// upstream database, one document object per line.
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	domsrc "github.com/policygraph/labeldex/internal/domain/source"
)

// maxLineSize bounds a single export line. Label metadata is small; 4MB
// leaves generous headroom.
const maxLineSize = 4 * 1024 * 1024

// JSONLReader implements usecase/pipeline.Source over a JSONL export file.
type JSONLReader struct {
	path string
}

// NewJSONLReader creates a reader over the export at path.
func NewJSONLReader(path string) *JSONLReader {
	return &JSONLReader{path: path}
}

// Read returns all well-formed source documents from the export. Records with
// an empty source url or without a family document are skipped -- filtering
// them is this collaborator's contract, the transform rules assume documents
// already satisfy it.
func (r *JSONLReader) Read(ctx context.Context) ([]domsrc.Document, error) {
	f, err := os.Open(filepath.Clean(r.path))
	if err != nil {
		return nil, fmt.Errorf("open export %s: %w", r.path, err)
	}
	defer f.Close()

	docs, err := decodeAll(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read export %s: %w", r.path, err)
	}
	return docs, nil
}

func decodeAll(ctx context.Context, in io.Reader) ([]domsrc.Document, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var docs []domsrc.Document
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var doc domsrc.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if doc.SourceURL == "" || doc.FamilyDocument == nil {
			continue
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return docs, nil
}
