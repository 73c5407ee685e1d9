// Package path provides the path expression data model: subject-then-predicate
// traversal chains, mutation expressions attached to them, the arena of linked
// path contexts, and the handler registry that resolves property accesses.
package path

import "github.com/c360/sparqlpath/rdf"

// Segment is one step of a path expression. The first segment of an
// expression carries the subject term(s); every later segment carries exactly
// one predicate.
type Segment struct {
	// Subject holds the root term(s). Set only on the first segment. Multiple
	// terms are legal only when the expression is used as a concrete object
	// (a range expression with no predicates).
	Subject []rdf.Term

	// Predicate is the step predicate. Set on all non-first segments.
	Predicate rdf.Term
}

// Expression is an ordered subject-then-predicates chain describing one graph
// traversal. Expressions are treated as immutable once produced: Extend
// returns a copy.
type Expression []Segment

// NewExpression creates an expression rooted at the given subject term(s).
func NewExpression(subject ...rdf.Term) Expression {
	return Expression{{Subject: subject}}
}

// Extend returns a new expression with one more predicate step appended.
func (e Expression) Extend(predicate rdf.Term) Expression {
	extended := make(Expression, len(e), len(e)+1)
	copy(extended, e)
	return append(extended, Segment{Predicate: predicate})
}

// Subject returns the root subject term(s), or nil for an empty expression.
func (e Expression) Subject() []rdf.Term {
	if len(e) == 0 {
		return nil
	}
	return e[0].Subject
}

// PredicateCount returns the number of predicate steps beyond the subject.
func (e Expression) PredicateCount() int {
	if len(e) == 0 {
		return 0
	}
	return len(e) - 1
}
