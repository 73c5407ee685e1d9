// Package rdf provides the RDF term data model used by the path and sparql
// packages, and the serializer that renders a single term into SPARQL text.
package rdf

import "fmt"

// TermKind identifies RDF term types.
type TermKind uint8

const (
	// TermNamedNode represents an IRI term.
	TermNamedNode TermKind = iota
	// TermLiteral represents a literal term.
	TermLiteral
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermVariable represents a query variable binding site.
	TermVariable
	// TermDefaultGraph represents the default graph marker.
	TermDefaultGraph
)

// String returns the string representation of TermKind.
func (k TermKind) String() string {
	switch k {
	case TermNamedNode:
		return "NamedNode"
	case TermLiteral:
		return "Literal"
	case TermBlankNode:
		return "BlankNode"
	case TermVariable:
		return "Variable"
	case TermDefaultGraph:
		return "DefaultGraph"
	default:
		return "unknown"
	}
}

// Term is a value that can appear in a triple pattern.
type Term interface {
	Kind() TermKind
	// Value returns the bare value of the term: the IRI text, the literal's
	// lexical form, or the blank node / variable label.
	Value() string
	String() string
}

// NamedNode represents an RDF IRI.
type NamedNode struct {
	// IRI is the absolute identifier text.
	IRI string
}

// Kind returns TermNamedNode.
func (n NamedNode) Kind() TermKind { return TermNamedNode }

// Value returns the IRI text.
func (n NamedNode) Value() string { return n.IRI }

// String returns the angle-bracketed IRI.
func (n NamedNode) String() string { return "<" + n.IRI + ">" }

// LocalName returns the fragment or final path segment of the IRI: the text
// after the last '#', else after the last '/', else after the last ':'.
// Used to derive query variable names from predicates.
func (n NamedNode) LocalName() string {
	for _, sep := range []byte{'#', '/', ':'} {
		for i := len(n.IRI) - 1; i >= 0; i-- {
			if n.IRI[i] == sep {
				return n.IRI[i+1:]
			}
		}
	}
	return n.IRI
}

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype string
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// Value returns the lexical form.
func (l Literal) Value() string { return l.Lexical }

// String returns a readable representation of the literal.
func (l Literal) String() string {
	if l.Lang != "" {
		return fmt.Sprintf("%q@%s", l.Lexical, l.Lang)
	}
	if l.Datatype != "" {
		return fmt.Sprintf("%q^^<%s>", l.Lexical, l.Datatype)
	}
	return fmt.Sprintf("%q", l.Lexical)
}

// BlankNode represents an RDF blank node.
type BlankNode struct {
	// ID is the blank node identifier.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// Value returns the blank node identifier.
func (b BlankNode) Value() string { return b.ID }

// String returns the identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Variable represents a query variable. It marks a binding site and has no
// serialized value form; serializing one as a value is an error.
type Variable struct {
	// Name is the variable label without the '?' prefix.
	Name string
}

// Kind returns TermVariable.
func (v Variable) Kind() TermKind { return TermVariable }

// Value returns the variable label.
func (v Variable) Value() string { return v.Name }

// String returns the label prefixed with "?".
func (v Variable) String() string { return "?" + v.Name }

// DefaultGraph is the default graph marker. It never appears in query text.
type DefaultGraph struct{}

// Kind returns TermDefaultGraph.
func (DefaultGraph) Kind() TermKind { return TermDefaultGraph }

// Value returns the empty string.
func (DefaultGraph) Value() string { return "" }

// String identifies the marker.
func (DefaultGraph) String() string { return "DefaultGraph" }
