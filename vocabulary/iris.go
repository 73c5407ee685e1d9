// Package vocabulary provides common RDF namespace constants and the JSON-LD
// style context that resolves friendly property names into predicate IRIs.
package vocabulary

import "github.com/c360/sparqlpath/rdf"

// Well-known namespace IRIs.
const (
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS = "http://www.w3.org/2000/01/rdf-schema#"
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	FOAF = "http://xmlns.com/foaf/0.1/"
)

// Frequently used predicate terms.
var (
	Type    = rdf.NamedNode{IRI: RDF + "type"}
	Label   = rdf.NamedNode{IRI: RDFS + "label"}
	Comment = rdf.NamedNode{IRI: RDFS + "comment"}
	Knows   = rdf.NamedNode{IRI: FOAF + "knows"}
	Name    = rdf.NamedNode{IRI: FOAF + "name"}
)

// Common XSD datatype IRIs for literal construction.
const (
	XSDString   = XSD + "string"
	XSDInteger  = XSD + "integer"
	XSDBoolean  = XSD + "boolean"
	XSDDateTime = XSD + "dateTime"
)
