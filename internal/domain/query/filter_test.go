package query

import (
	"strings"
	"testing"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Token
	}{
		{"bare value", "Forest", Token{Op: OpAnd, Value: "Forest"}},
		{"explicit and", "and:Forest", Token{Op: OpAnd, Value: "Forest"}},
		{"explicit or", "or:Energy", Token{Op: OpOr, Value: "Energy"}},
		{"unknown prefix is a bare value", "not:Forest", Token{Op: OpAnd, Value: "not:Forest"}},
		{"value containing colon", "or:Genre/Corporate Finance Project", Token{Op: OpOr, Value: "Genre/Corporate Finance Project"}},
		{"colon inside bare value", "Family/CCLW.family:1", Token{Op: OpAnd, Value: "Family/CCLW.family:1"}},
		{"empty string", "", Token{Op: OpAnd, Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseToken(tt.raw)
			if got != tt.want {
				t.Errorf("ParseToken(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCompile_ZeroTokens(t *testing.T) {
	for _, field := range []string{FieldLabelIDs, FieldLabelRelationships, "anything"} {
		if got := Compile(field, nil); got != "true" {
			t.Errorf("Compile(%q, nil) = %q, want %q", field, got, "true")
		}
	}
}

func TestCompile_SingleToken(t *testing.T) {
	got := Compile(FieldLabelIDs, ParseTokens([]string{"Forest"}))
	want := "label_ids contains 'Forest'"
	if got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompile_LeftFold(t *testing.T) {
	got := Compile(FieldLabelIDs, ParseTokens([]string{"Forest", "or:Energy", "and:Water"}))
	want := "(label_ids contains 'Forest') or (label_ids contains 'Energy') and (label_ids contains 'Water')"
	if got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}

func TestCompile_FirstOperatorDiscarded(t *testing.T) {
	// The operator on the first token joins nothing, so or: and and: compile
	// identically in first position.
	a := Compile(FieldLabelIDs, ParseTokens([]string{"or:Forest", "and:Water"}))
	b := Compile(FieldLabelIDs, ParseTokens([]string{"and:Forest", "and:Water"}))
	if a != b {
		t.Errorf("first-token operator leaked into output: %q vs %q", a, b)
	}
}

func TestCompile_ClauseCountRoundTrip(t *testing.T) {
	raws := []string{"Forest", "or:Energy", "and:Water", "or:Transport", "Health"}
	for n := 0; n <= len(raws); n++ {
		got := Compile(FieldLabelIDs, ParseTokens(raws[:n]))
		count := strings.Count(got, "contains")
		if count != n {
			t.Errorf("n=%d: predicate %q has %d contains clauses, want %d", n, got, count, n)
		}
		if n == 0 && got != "true" {
			t.Errorf("n=0: predicate %q, want literal true", got)
		}
	}
}

func TestCompile_NoEscaping(t *testing.T) {
	// Values are interpolated verbatim; the emitted text is the
	// compatibility contract.
	got := Compile(FieldLabelIDs, ParseTokens([]string{"O'Brien"}))
	want := "label_ids contains 'O'Brien'"
	if got != want {
		t.Errorf("Compile = %q, want %q", got, want)
	}
}
