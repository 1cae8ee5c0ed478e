package transform

import "strings"

// diagramNodes seed the flowchart with the entities every rule path starts
// from, so edges render against declared nodes.
var diagramNodes = []string{
	"Document",
	"FamilyDocument",
	"Family",
	"Corpus",
	"CorpusType",
}

// Diagram renders a mermaid flowchart of the graph paths the transformer's
// rules consume. It iterates the registry only; rule behavior is never
// inspected.
func Diagram(t Transformer) string {
	var b strings.Builder
	b.WriteString("flowchart LR\n")
	for _, node := range diagramNodes {
		b.WriteString("    " + node + "\n")
	}
	for _, r := range t.Rules() {
		if r.DiagramEdge == "" {
			continue
		}
		b.WriteString("    " + r.DiagramEdge + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
