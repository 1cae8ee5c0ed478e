package transform

import (
	"time"

	"github.com/policygraph/labeldex/internal/domain/source"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// sourceDoc builds a well-formed source document for the given corpus type.
func sourceDoc(corpusType string) source.Document {
	return source.Document{
		ID:        "1001",
		Title:     "National Climate Strategy",
		SourceURL: "https://example.org/doc.pdf",
		FamilyDocument: &source.FamilyDocument{
			ValidMetadata: map[string][]string{},
			Family: &source.Family{
				ImportID: "CCLW.family.1001.0",
				Title:    "Climate Strategy Family Title",
				Name:     "Climate Strategy Family",
				Corpus: source.Corpus{
					CorpusType: source.CorpusType{Name: corpusType},
				},
			},
		},
	}
}
