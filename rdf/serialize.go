package rdf

import (
	"fmt"
	"strings"

	"github.com/c360/sparqlpath/errors"
)

// Serialize converts a single term into its exact SPARQL text representation.
//
//   - NamedNode: the angle-bracketed IRI, verbatim.
//   - Literal: the double-quoted lexical form with embedded double quotes
//     escaped by a preceding backslash; language tag or datatype suffixes are
//     preserved losslessly.
//   - BlankNode: "_:" followed by the identifier, verbatim.
//
// Any other kind (Variable used as a value, DefaultGraph) has no valid query
// text form and fails with errors.ErrTermKind naming the offending kind.
func Serialize(term Term) (string, error) {
	switch t := term.(type) {
	case NamedNode:
		return "<" + t.IRI + ">", nil
	case Literal:
		quoted := `"` + escapeLiteral(t.Lexical) + `"`
		switch {
		case t.Lang != "":
			return quoted + "@" + t.Lang, nil
		case t.Datatype != "":
			return quoted + "^^<" + t.Datatype + ">", nil
		default:
			return quoted, nil
		}
	case BlankNode:
		return "_:" + t.ID, nil
	default:
		return "", errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrTermKind, term.Kind()),
			"Serializer", "Serialize", "term rendering")
	}
}

// escapeLiteral escapes embedded double quotes. The spec's minimal contract
// performs no other escaping.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
