package sparql

import (
	"fmt"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/path"
	"github.com/c360/sparqlpath/rdf"
)

// walkChain consumes an ordered path expression (a subject followed by one or
// more predicate steps) and produces one triple pattern per step. Every step
// before the last gets a freshly allocated anonymous variable (v0, v1, ...
// by position) as its object, which becomes the subject of the next pattern.
// The final step's object is ?finalVar, which the caller has already
// allocated in scope.
//
// Patterns are rendered "S P O." with a trailing period, ready for a WHERE
// block.
func walkChain(expr path.Expression, finalVar string, scope VariableScope) ([]string, error) {
	current, err := chainSubject(expr)
	if err != nil {
		return nil, err
	}

	last := len(expr) - 1
	patterns := make([]string, 0, last)
	for i := 1; i <= last; i++ {
		predicate, err := rdf.Serialize(expr[i].Predicate)
		if err != nil {
			return nil, err
		}

		var object string
		if i < last {
			object = "?" + scope.Allocate(fmt.Sprintf("v%d", i-1))
		} else {
			object = "?" + finalVar
		}

		patterns = append(patterns, current+" "+predicate+" "+object+".")
		current = object
	}
	return patterns, nil
}

// chainSubject serializes the root subject of an expression that is about to
// be walked. A walked chain puts its root in subject position, so exactly one
// term is required there.
func chainSubject(expr path.Expression) (string, error) {
	subject := expr.Subject()
	if len(subject) == 0 {
		return "", errors.ErrPathTooShort
	}
	if len(subject) > 1 {
		return "", errors.ErrMultiSubject
	}
	return rdf.Serialize(subject[0])
}

// variableForPredicate derives the variable label for a chain's final
// predicate: the predicate's local name, sanitized the same way as
// caller-supplied hints.
func variableForPredicate(predicate rdf.Term) string {
	label := predicate.Value()
	if named, ok := predicate.(rdf.NamedNode); ok {
		label = named.LocalName()
	}
	return sanitizeVariable(label)
}

// objectList serializes the concrete term(s) of a zero-length range
// expression into a comma-separated object list sharing one subject and
// predicate.
func objectList(expr path.Expression) (string, error) {
	terms := expr.Subject()
	if len(terms) == 0 {
		return "", errors.ErrPathTooShort
	}

	out := ""
	for i, term := range terms {
		s, err := rdf.Serialize(term)
		if err != nil {
			return "", err
		}
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out, nil
}
