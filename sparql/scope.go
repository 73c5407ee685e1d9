// Package sparql compiles path and mutation expressions into SPARQL query
// text. The compiler is purely computational: it holds no state between
// calls, and every compilation allocates its own variable scope, so
// independent compilations may run concurrently with no coordination.
package sparql

import (
	"fmt"
	"regexp"
)

// VariableScope tracks the query variable labels already allocated within one
// compiled query. Created fresh per compilation; never shared across queries.
type VariableScope map[string]bool

// NewVariableScope creates an empty scope.
func NewVariableScope() VariableScope {
	return make(VariableScope)
}

// Allocate returns a collision-free variable label for the candidate and
// marks it used. An unused candidate is returned unchanged; otherwise the
// suffixes _0, _1, ... are scanned in ascending order until a free label is
// found. The scope only grows, so termination is guaranteed and freed lower
// suffixes are never reused.
func (s VariableScope) Allocate(candidate string) string {
	if !s[candidate] {
		s[candidate] = true
		return candidate
	}
	for i := 0; ; i++ {
		label := fmt.Sprintf("%s_%d", candidate, i)
		if !s[label] {
			s[label] = true
			return label
		}
	}
}

var invalidVariableChars = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// sanitizeVariable strips characters incompatible with SPARQL variable
// syntax. An empty result falls back to the literal label "result".
func sanitizeVariable(label string) string {
	cleaned := invalidVariableChars.ReplaceAllString(label, "")
	if cleaned == "" {
		return "result"
	}
	return cleaned
}
