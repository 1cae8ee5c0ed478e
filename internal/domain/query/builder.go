package query

import (
	"fmt"
	"strings"
)

// Default limits applied when the config leaves them unset.
const (
	DefaultRecordLimit  = 100
	DefaultGroupMaxHits = 10000
)

// GroupFields are the grouping dimensions of the facet query, in emission
// order. Each becomes an independent top-N count stage.
var GroupFields = []string{
	FieldLabelTypes,
	FieldLabelTitles,
	FieldLabelIDs,
	FieldLabelRelationships,
}

// Builder assembles the two final query strings from compiled facet
// predicates. excludeTypes suppresses records whose label_types facet matches
// any of the configured values in the grouping query only.
type Builder struct {
	recordLimit  int
	groupMaxHits int
	excludeTypes []string
}

// NewBuilder creates a Builder. Non-positive limits fall back to defaults.
func NewBuilder(recordLimit, groupMaxHits int, excludeTypes []string) *Builder {
	if recordLimit <= 0 {
		recordLimit = DefaultRecordLimit
	}
	if groupMaxHits <= 0 {
		groupMaxHits = DefaultGroupMaxHits
	}
	return &Builder{
		recordLimit:  recordLimit,
		groupMaxHits: groupMaxHits,
		excludeTypes: excludeTypes,
	}
}

// DocumentQuery selects raw records where both facet predicates hold.
func (b *Builder) DocumentQuery(labels, relationships string) string {
	return fmt.Sprintf(
		"select * from sources * where (%s) and (%s) limit %d;",
		labels, relationships, b.recordLimit,
	)
}

// GroupingQuery selects records where both facet predicates and the exclusion
// predicate hold, then pipes them through one independent grouping stage per
// facet dimension. Each stage requests only a descending count aggregate.
func (b *Builder) GroupingQuery(labels, relationships string) string {
	where := fmt.Sprintf("(%s) and ", labels)
	if excl := b.exclusionPredicate(); excl != "" {
		where += excl + " and "
	}
	where += fmt.Sprintf("(%s)", relationships)

	stages := make([]string, 0, len(GroupFields))
	for _, field := range GroupFields {
		stages = append(stages, b.groupStage(field))
	}

	return fmt.Sprintf(
		"select * from sources * where %s limit %d | %s;",
		where, b.recordLimit, strings.Join(stages, " | "),
	)
}

// exclusionPredicate is the negated disjunction over the exclusion list, or
// empty when nothing is excluded.
func (b *Builder) exclusionPredicate() string {
	if len(b.excludeTypes) == 0 {
		return ""
	}
	terms := make([]string, 0, len(b.excludeTypes))
	for _, t := range b.excludeTypes {
		terms = append(terms, fmt.Sprintf("%s contains '%s'", FieldLabelTypes, t))
	}
	return fmt.Sprintf("!(%s)", strings.Join(terms, " or "))
}

func (b *Builder) groupStage(field string) string {
	return fmt.Sprintf(
		"all(group(%s) max(%d) order(-count()) each(output(count())))",
		field, b.groupMaxHits,
	)
}
