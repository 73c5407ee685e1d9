package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/sparqlpath/errors"
)

func TestDecodeResults_Select(t *testing.T) {
	doc := `{
		"head": {"vars": ["name", "age"]},
		"results": {"bindings": [
			{"name": {"type": "literal", "value": "Alice", "xml:lang": "en"},
			 "age": {"type": "literal", "value": "30",
			         "datatype": "http://www.w3.org/2001/XMLSchema#integer"}},
			{"name": {"type": "literal", "value": "Bob"}}
		]}
	}`

	results, err := decodeResults([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, results.Head.Vars)
	require.Len(t, results.Results.Bindings, 2)
	assert.Equal(t, "en", results.Results.Bindings[0]["name"].Lang)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#integer",
		results.Results.Bindings[0]["age"].Datatype)

	assert.Equal(t, []string{"Alice", "Bob"}, results.Values("name"))
	// Unbound variables are skipped, not padded.
	assert.Equal(t, []string{"30"}, results.Values("age"))
	assert.Empty(t, results.Values("missing"))
}

func TestDecodeResults_Ask(t *testing.T) {
	results, err := decodeResults([]byte(`{"head": {}, "boolean": true}`))
	require.NoError(t, err)

	require.NotNil(t, results.Boolean)
	assert.True(t, *results.Boolean)
	assert.Nil(t, results.Results)
	assert.Empty(t, results.Values("anything"))
}

func TestDecodeResults_Failures(t *testing.T) {
	cases := map[string]string{
		"not json":            `SELECT is not JSON`,
		"missing head":        `{"results": {"bindings": []}}`,
		"no results or ask":   `{"head": {"vars": []}}`,
		"binding without value": `{
			"head": {"vars": ["v"]},
			"results": {"bindings": [{"v": {"type": "literal"}}]}
		}`,
		"unknown term type": `{
			"head": {"vars": ["v"]},
			"results": {"bindings": [{"v": {"type": "graph", "value": "x"}}]}
		}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeResults([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrInvalidResults)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}
