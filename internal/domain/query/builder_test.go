package query

import (
	"strings"
	"testing"
)

func TestDocumentQuery(t *testing.T) {
	b := NewBuilder(100, 10000, []string{"Case", "Family", "Project"})

	got := b.DocumentQuery("label_ids contains 'Forest'", "true")
	want := "select * from sources * where (label_ids contains 'Forest') and (true) limit 100;"
	if got != want {
		t.Errorf("DocumentQuery = %q, want %q", got, want)
	}
}

func TestGroupingQuery_ExclusionClause(t *testing.T) {
	b := NewBuilder(100, 10000, []string{"Case", "Family", "Project"})

	got := b.GroupingQuery("true", "true")
	wantExcl := "!(label_types contains 'Case' or label_types contains 'Family' or label_types contains 'Project')"
	if !strings.Contains(got, wantExcl) {
		t.Errorf("GroupingQuery missing exclusion clause %q in %q", wantExcl, got)
	}
}

func TestGroupingQuery_FullShape(t *testing.T) {
	b := NewBuilder(100, 10000, []string{"Case", "Family", "Project"})

	got := b.GroupingQuery("label_ids contains 'Forest'", "label_relationships contains 'is'")
	want := "select * from sources * where (label_ids contains 'Forest') and " +
		"!(label_types contains 'Case' or label_types contains 'Family' or label_types contains 'Project') and " +
		"(label_relationships contains 'is') limit 100 | " +
		"all(group(label_types) max(10000) order(-count()) each(output(count()))) | " +
		"all(group(label_titles) max(10000) order(-count()) each(output(count()))) | " +
		"all(group(label_ids) max(10000) order(-count()) each(output(count()))) | " +
		"all(group(label_relationships) max(10000) order(-count()) each(output(count())));"
	if got != want {
		t.Errorf("GroupingQuery = %q, want %q", got, want)
	}
}

func TestGroupingQuery_OneStagePerFacet(t *testing.T) {
	b := NewBuilder(50, 200, nil)

	got := b.GroupingQuery("true", "true")
	if n := strings.Count(got, "all(group("); n != len(GroupFields) {
		t.Errorf("got %d grouping stages, want %d: %q", n, len(GroupFields), got)
	}
	// Stages are independent count aggregates; raw field outputs never appear.
	if strings.Contains(got, "output(summary") {
		t.Errorf("grouping stage requests raw fields: %q", got)
	}
}

func TestGroupingQuery_EmptyExclusionList(t *testing.T) {
	b := NewBuilder(100, 10000, nil)

	got := b.GroupingQuery("true", "true")
	if strings.Contains(got, "!(") {
		t.Errorf("empty exclusion list should omit the exclusion clause, got %q", got)
	}
	if !strings.HasPrefix(got, "select * from sources * where (true) and (true) limit 100 | ") {
		t.Errorf("unexpected query prefix: %q", got)
	}
}

func TestNewBuilder_Defaults(t *testing.T) {
	b := NewBuilder(0, 0, nil)

	doc := b.DocumentQuery("true", "true")
	if !strings.Contains(doc, "limit 100;") {
		t.Errorf("default record limit not applied: %q", doc)
	}
	groups := b.GroupingQuery("true", "true")
	if !strings.Contains(groups, "max(10000)") {
		t.Errorf("default group max hits not applied: %q", groups)
	}
}
