package sparql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/path"
	"github.com/c360/sparqlpath/rdf"
)

func iri(s string) rdf.NamedNode { return rdf.NamedNode{IRI: s} }

func TestCompile_ReadSinglePredicate(t *testing.T) {
	expr := path.NewExpression(iri("https://example.org/#me")).
		Extend(iri("https://ex.org/p1"))

	query, err := New().Compile(Request{Property: "p1", Expression: expr})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT ?p1 WHERE { <https://example.org/#me> <https://ex.org/p1> ?p1. }",
		query)
}

func TestCompile_ReadThreePredicates(t *testing.T) {
	expr := path.NewExpression(iri("https://example.org/#me")).
		Extend(iri("https://ex.org/p1")).
		Extend(iri("https://ex.org/p2")).
		Extend(iri("https://ex.org/p3"))

	query, err := New().Compile(Request{Property: "p3", Expression: expr})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT ?p3 WHERE { "+
			"<https://example.org/#me> <https://ex.org/p1> ?v0. "+
			"?v0 <https://ex.org/p2> ?v1. "+
			"?v1 <https://ex.org/p3> ?p3. }",
		query)
}

func TestCompile_ReadPropertySanitization(t *testing.T) {
	expr := path.NewExpression(iri("https://example.org/#me")).
		Extend(iri("https://ex.org/p1"))

	tests := []struct {
		name     string
		property string
		variable string
	}{
		{"friendly name", "given name", "givenname"},
		{"empty falls back", "", "result"},
		{"only invalid chars falls back", "@!#", "result"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			query, err := New().Compile(Request{Property: test.property, Expression: expr})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(query, "SELECT ?"+test.variable+" WHERE"), query)
		})
	}
}

func TestCompile_ReadLiteralSubjectAndObjectChain(t *testing.T) {
	// Blank node subjects are legal in subject position.
	expr := path.NewExpression(rdf.BlankNode{ID: "b0"}).
		Extend(iri("https://ex.org/p1"))

	query, err := New().Compile(Request{Property: "p1", Expression: expr})
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?p1 WHERE { _:b0 <https://ex.org/p1> ?p1. }", query)
}

func TestCompile_MissingPathExpression(t *testing.T) {
	_, err := New().Compile(Request{Description: "me.friends"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoPathExpression)
	assert.Contains(t, err.Error(), "me.friends has no pathExpression property")
}

func TestCompile_PathTooShort(t *testing.T) {
	expr := path.NewExpression(iri("https://example.org/#me"))

	_, err := New().Compile(Request{Description: "me", Property: "me", Expression: expr})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPathTooShort)
	assert.Contains(t, err.Error(), "me should at least contain a subject and a predicate")
}

func TestCompile_ReadRejectsMultiTermSubject(t *testing.T) {
	expr := path.NewExpression(iri("https://ex.org/#a"), iri("https://ex.org/#b")).
		Extend(iri("https://ex.org/p1"))

	_, err := New().Compile(Request{Property: "p1", Expression: expr})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMultiSubject)
}

func TestCompile_ReadRejectsVariableAsSubjectValue(t *testing.T) {
	expr := path.NewExpression(rdf.Variable{Name: "s"}).
		Extend(iri("https://ex.org/p1"))

	_, err := New().Compile(Request{Property: "p1", Expression: expr})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrTermKind)
}

func TestCompileMutation_InsertData(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("https://example.org/#me")),
		Predicate: iri("https://ex.org/p1"),
		Range:     path.NewExpression(rdf.Literal{Lexical: "Ruben"}),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT DATA { <https://example.org/#me> <https://ex.org/p1> "Ruben" }`,
		block)
}

func TestCompileMutation_DeleteDataMultipleObjects(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationDelete,
		Domain:    path.NewExpression(iri("#D0")),
		Predicate: iri("#p"),
		Range: path.NewExpression(
			iri("#R0"),
			rdf.Literal{Lexical: "other"},
		),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	assert.Equal(t, `DELETE DATA { <#D0> <#p> <#R0>, "other" }`, block)
}

func TestCompileMutation_DomainChain(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0")).Extend(iri("#Dp1")).Extend(iri("#Dp2")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT { ?Dp2 <p> <#R0> } WHERE { <#D0> <#Dp1> ?v0. ?v0 <#Dp2> ?Dp2. }",
		block)
}

func TestCompileMutation_RangeChain(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationDelete,
		Domain:    path.NewExpression(iri("#D0")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")).Extend(iri("#Rp1")).Extend(iri("#Rp2")),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	assert.Equal(t,
		"DELETE { <#D0> <p> ?Rp2 } WHERE { <#R0> <#Rp1> ?v0. ?v0 <#Rp2> ?Rp2. }",
		block)
}

func TestCompileMutation_DoubleChainScopedVariables(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0")).Extend(iri("#Dp1")).Extend(iri("#Dp2")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")).Extend(iri("#Rp1")).Extend(iri("#Rp2")),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	// The shared scope forces the range walk's intermediates onto suffixed
	// labels so they cannot collide with the domain walk's.
	assert.Equal(t,
		"INSERT { ?Dp2 <p> ?Rp2 } WHERE { "+
			"<#D0> <#Dp1> ?v0. ?v0 <#Dp2> ?Dp2. "+
			"<#R0> <#Rp1> ?v0_0. ?v0_0 <#Rp2> ?Rp2. }",
		block)
}

func TestCompileMutation_SelfReferentialDelete(t *testing.T) {
	mut := path.Mutation{
		Type:   path.MutationDelete,
		Domain: path.NewExpression(iri("#D0")).Extend(iri("#Dp1")).Extend(iri("#Dp2")),
	}

	block, err := New().CompileMutation(mut)
	require.NoError(t, err)
	assert.Equal(t,
		"DELETE { ?v0 <#Dp2> ?Dp2 } WHERE { <#D0> <#Dp1> ?v0. ?v0 <#Dp2> ?Dp2. }",
		block)
}

func TestCompileMutation_SelfReferentialNeedsPredicate(t *testing.T) {
	mut := path.Mutation{
		Type:   path.MutationDelete,
		Domain: path.NewExpression(iri("#D0")),
	}

	_, err := New().CompileMutation(mut)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPathTooShort)
}

func TestCompileMutation_RejectsMultiTermWalkedDomain(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0"), iri("#D1")).Extend(iri("#Dp1")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")),
	}

	_, err := New().CompileMutation(mut)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMultiSubject)
}

func TestCompileMutation_RejectsMultiTermConcreteDomain(t *testing.T) {
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0"), iri("#D1")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")),
	}

	_, err := New().CompileMutation(mut)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMultiSubject)
}

func TestCompile_MultipleMutationsJoined(t *testing.T) {
	mutations := []path.Mutation{
		{
			Type:      path.MutationInsert,
			Domain:    path.NewExpression(iri("#D0")).Extend(iri("#Dp1")).Extend(iri("#Dp2")),
			Predicate: iri("p"),
			Range:     path.NewExpression(iri("#R0")).Extend(iri("#Rp1")).Extend(iri("#Rp2")),
		},
		{
			Type:      path.MutationDelete,
			Domain:    path.NewExpression(iri("#D1")),
			Predicate: iri("q"),
			Range:     path.NewExpression(rdf.Literal{Lexical: "gone"}),
		},
		{
			Type:      path.MutationInsert,
			Domain:    path.NewExpression(iri("#D2")),
			Predicate: iri("r"),
			Range:     path.NewExpression(iri("#R2")),
		},
	}

	query, err := New().Compile(Request{Mutations: mutations})
	require.NoError(t, err)

	blocks := strings.Split(query, ";\n")
	require.Len(t, blocks, 3)
	assert.Equal(t,
		"INSERT { ?Dp2 <p> ?Rp2 } WHERE { "+
			"<#D0> <#Dp1> ?v0. ?v0 <#Dp2> ?Dp2. "+
			"<#R0> <#Rp1> ?v0_0. ?v0_0 <#Rp2> ?Rp2. }",
		blocks[0])
	assert.Equal(t, `DELETE DATA { <#D1> <q> "gone" }`, blocks[1])
	assert.Equal(t, "INSERT DATA { <#D2> <r> <#R2> }", blocks[2])
}

func TestCompile_MutationsTakePrecedenceOverExpression(t *testing.T) {
	expr := path.NewExpression(iri("#D0")).Extend(iri("#Dp1"))
	mutations := []path.Mutation{{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")),
	}}

	query, err := New().Compile(Request{Property: "p1", Expression: expr, Mutations: mutations})
	require.NoError(t, err)
	assert.Equal(t, "INSERT DATA { <#D0> <p> <#R0> }", query)
}

func TestCompile_MutationScopesAreIndependent(t *testing.T) {
	// Two identical mutation expressions must produce identical blocks: the
	// second block's variables start fresh instead of being suffixed.
	mut := path.Mutation{
		Type:      path.MutationInsert,
		Domain:    path.NewExpression(iri("#D0")).Extend(iri("#Dp1")).Extend(iri("#Dp2")),
		Predicate: iri("p"),
		Range:     path.NewExpression(iri("#R0")),
	}

	query, err := New().Compile(Request{Mutations: []path.Mutation{mut, mut}})
	require.NoError(t, err)

	blocks := strings.Split(query, ";\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, blocks[0], blocks[1])
}

func TestFromPath(t *testing.T) {
	arena := path.NewArena()
	p := arena.Root(iri("https://example.org/#me")).
		Extend("knows", iri("https://ex.org/knows")).
		Extend("name", iri("https://ex.org/name"))

	req := FromPath(p)
	assert.Equal(t, "me.knows.name", req.Description)
	assert.Equal(t, "name", req.Property)
	assert.Equal(t, 2, req.Expression.PredicateCount())
	assert.Empty(t, req.Mutations)

	query, err := New().Compile(req)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT ?name WHERE { "+
			"<https://example.org/#me> <https://ex.org/knows> ?v0. "+
			"?v0 <https://ex.org/name> ?name. }",
		query)
}

func TestRegisterHandler(t *testing.T) {
	arena := path.NewArena()
	reg := path.NewRegistry(resolverFunc(func(property string) (rdf.NamedNode, error) {
		return rdf.NamedNode{IRI: "https://ex.org/" + property}, nil
	}))
	RegisterHandler(reg, New())

	p := arena.Root(iri("https://example.org/#me"))
	extended, err := reg.Access(p, "p1")
	require.NoError(t, err)

	out, err := reg.Access(extended.(path.Path), "sparql")
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT ?p1 WHERE { <https://example.org/#me> <https://ex.org/p1> ?p1. }",
		out)
}

type resolverFunc func(property string) (rdf.NamedNode, error)

func (f resolverFunc) Resolve(property string) (rdf.NamedNode, error) { return f(property) }
