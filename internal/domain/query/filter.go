// Package query compiles user-supplied facet filters into the index query
// language and assembles the document and grouping queries issued against the
// search index.
package query

import (
	"fmt"
	"strings"
)

// Op is the boolean operator joining a filter clause to the one before it.
type Op string

// Chaining operators.
const (
	OpAnd Op = "and"
	OpOr  Op = "or"
)

// Facet fields exposed by the index schema.
const (
	FieldLabelIDs           = "label_ids"
	FieldLabelTitles        = "label_titles"
	FieldLabelTypes         = "label_types"
	FieldLabelRelationships = "label_relationships"
)

// Token is one parsed facet filter, owned transiently for a single query.
type Token struct {
	Op    Op
	Value string
}

// ParseToken parses a raw filter of the form "<op>:<value>" or "<value>".
// First the operator-prefixed form is attempted; anything else falls back to a
// bare value with an implicit "and". Malformed input therefore cannot occur.
func ParseToken(raw string) Token {
	op, value, found := strings.Cut(raw, ":")
	if found && (Op(op) == OpAnd || Op(op) == OpOr) {
		return Token{Op: Op(op), Value: value}
	}
	return Token{Op: OpAnd, Value: raw}
}

// ParseTokens parses a slice of raw filters in order.
func ParseTokens(raws []string) []Token {
	tokens := make([]Token, len(raws))
	for i, raw := range raws {
		tokens[i] = ParseToken(raw)
	}
	return tokens
}

// Compile folds the tokens into a single boolean predicate over field.
//
// Zero tokens compile to the tautology "true" so an absent filter imposes no
// constraint. A single token compiles to a bare contains clause. Two or more
// tokens fold left to right, each clause joined by its own operator; the first
// token's operator has nothing to join with and is discarded. There is no
// precedence grouping beyond the strict left fold -- mixed and/or chains keep
// the flat association for compatibility with the existing query surface.
//
// Values are interpolated without escaping; the emitted text is part of the
// compatibility contract.
func Compile(field string, tokens []Token) string {
	switch len(tokens) {
	case 0:
		return "true"
	case 1:
		return fmt.Sprintf("%s contains '%s'", field, tokens[0].Value)
	}

	where := clause(field, tokens[0].Value)
	for _, t := range tokens[1:] {
		where = fmt.Sprintf("%s %s %s", where, t.Op, clause(field, t.Value))
	}
	return where
}

func clause(field, value string) string {
	return fmt.Sprintf("(%s contains '%s')", field, value)
}
