package path

import "github.com/c360/sparqlpath/rdf"

// MutationType distinguishes insertion from deletion.
type MutationType int

const (
	// MutationInsert adds triples.
	MutationInsert MutationType = iota
	// MutationDelete removes triples.
	MutationDelete
)

// String returns the SPARQL keyword for the mutation type.
func (mt MutationType) String() string {
	switch mt {
	case MutationInsert:
		return "INSERT"
	case MutationDelete:
		return "DELETE"
	default:
		return "unknown"
	}
}

// Mutation describes an INSERT or DELETE intent connecting a domain expression
// to a range expression through a predicate.
//
// Predicate and Range are optional together: their absence signals "reuse the
// final predicate and object of Domain as both sides", i.e. deletion of the
// exact final triple pattern of the domain chain.
type Mutation struct {
	Type      MutationType
	Domain    Expression
	Predicate rdf.Term
	Range     Expression
}

// SelfReferential reports whether the mutation carries no predicate/range and
// targets the domain's own final triple pattern.
func (m Mutation) SelfReferential() bool {
	return m.Predicate == nil && len(m.Range) == 0
}
