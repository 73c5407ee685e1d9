package sparql

import (
	"fmt"
	"strings"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/path"
	"github.com/c360/sparqlpath/rdf"
)

// CompileMutation compiles a single mutation expression into one fully formed
// query block, including the mutation keyword and braces. Each call allocates
// a fresh variable scope; scopes are never shared across mutation blocks.
//
// Four structural shapes apply, chosen by the predicate-step counts of the
// domain and range expressions. A mutation with no predicate and no range at
// all deletes the exact final triple pattern of its domain chain.
func (c *Compiler) CompileMutation(mut path.Mutation) (string, error) {
	scope := NewVariableScope()

	if mut.SelfReferential() {
		return c.compileSelfTriple(mut, scope)
	}

	predicate, err := rdf.Serialize(mut.Predicate)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "predicate rendering")
	}

	domainSteps := mut.Domain.PredicateCount()
	rangeSteps := mut.Range.PredicateCount()

	switch {
	case domainSteps == 0 && rangeSteps == 0:
		return c.compileData(mut, predicate)
	case rangeSteps == 0:
		return c.compileDomainChain(mut, predicate, scope)
	case domainSteps == 0:
		return c.compileRangeChain(mut, predicate, scope)
	default:
		return c.compileDoubleChain(mut, predicate, scope)
	}
}

// compileData handles the fully concrete shape: both sides are bare subjects,
// so the triple is asserted or retracted directly with INSERT DATA or
// DELETE DATA. Multiple range terms expand into a comma-separated object list.
func (c *Compiler) compileData(mut path.Mutation, predicate string) (string, error) {
	subject, err := chainSubject(mut.Domain)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "domain subject rendering")
	}
	objects, err := objectList(mut.Range)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "range object rendering")
	}
	return fmt.Sprintf("%s DATA { %s %s %s }", mut.Type, subject, predicate, objects), nil
}

// compileDomainChain handles domain>0, range=0: the domain resolves through a
// variable chain ending at a variable named for its final predicate, and the
// concrete range term(s) sit in the template's object position.
func (c *Compiler) compileDomainChain(mut path.Mutation, predicate string, scope VariableScope) (string, error) {
	domainVar := scope.Allocate(variableForPredicate(mut.Domain[len(mut.Domain)-1].Predicate))
	where, err := walkChain(mut.Domain, domainVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "domain walk")
	}
	objects, err := objectList(mut.Range)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "range object rendering")
	}
	return fmt.Sprintf("%s { ?%s %s %s } WHERE { %s }",
		mut.Type, domainVar, predicate, objects, strings.Join(where, " ")), nil
}

// compileRangeChain handles domain=0, range>0, symmetric to the previous
// shape: a concrete domain subject and a walked range chain.
func (c *Compiler) compileRangeChain(mut path.Mutation, predicate string, scope VariableScope) (string, error) {
	subject, err := chainSubject(mut.Domain)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "domain subject rendering")
	}
	rangeVar := scope.Allocate(variableForPredicate(mut.Range[len(mut.Range)-1].Predicate))
	where, err := walkChain(mut.Range, rangeVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "range walk")
	}
	return fmt.Sprintf("%s { %s %s ?%s } WHERE { %s }",
		mut.Type, subject, predicate, rangeVar, strings.Join(where, " ")), nil
}

// compileDoubleChain handles domain>0, range>0: both sides resolve through
// variable chains. The single scope shared across both walks keeps the
// range's intermediate variables (v0_0, v0_1, ...) from colliding with the
// domain's (v0, v1, ...).
func (c *Compiler) compileDoubleChain(mut path.Mutation, predicate string, scope VariableScope) (string, error) {
	domainVar := scope.Allocate(variableForPredicate(mut.Domain[len(mut.Domain)-1].Predicate))
	domainWhere, err := walkChain(mut.Domain, domainVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "domain walk")
	}

	rangeVar := scope.Allocate(variableForPredicate(mut.Range[len(mut.Range)-1].Predicate))
	rangeWhere, err := walkChain(mut.Range, rangeVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "range walk")
	}

	where := append(domainWhere, rangeWhere...)
	return fmt.Sprintf("%s { ?%s %s ?%s } WHERE { %s }",
		mut.Type, domainVar, predicate, rangeVar, strings.Join(where, " ")), nil
}

// compileSelfTriple handles the predicate-less shape: delete the exact final
// triple pattern of the domain chain, with its last object as a bound
// variable named after the final predicate. The WHERE block repeats the whole
// chain so the template variable is bound.
func (c *Compiler) compileSelfTriple(mut path.Mutation, scope VariableScope) (string, error) {
	if mut.Domain.PredicateCount() < 1 {
		return "", errors.WrapInvalid(
			fmt.Errorf("mutation domain %w", errors.ErrPathTooShort),
			"Compiler", "CompileMutation", "self-referential deletion")
	}

	finalVar := scope.Allocate(variableForPredicate(mut.Domain[len(mut.Domain)-1].Predicate))
	where, err := walkChain(mut.Domain, finalVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(err, "Compiler", "CompileMutation", "domain walk")
	}

	template := strings.TrimSuffix(where[len(where)-1], ".")
	return fmt.Sprintf("DELETE { %s } WHERE { %s }", template, strings.Join(where, " ")), nil
}
