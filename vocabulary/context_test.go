package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_ResolveTermMapping(t *testing.T) {
	ctx := &Context{Terms: map[string]string{"knows": "https://ex.org/knows"}}

	node, err := ctx.Resolve("knows")
	require.NoError(t, err)
	assert.Equal(t, "https://ex.org/knows", node.IRI)
}

func TestContext_ResolvePrefixedName(t *testing.T) {
	ctx := Default()

	node, err := ctx.Resolve("rdf:type")
	require.NoError(t, err)
	assert.Equal(t, RDF+"type", node.IRI)
}

func TestContext_ResolveAbsoluteIRIPassthrough(t *testing.T) {
	ctx := &Context{}

	node, err := ctx.Resolve("https://ex.org/vocab#age")
	require.NoError(t, err)
	assert.Equal(t, "https://ex.org/vocab#age", node.IRI)

	node, err = ctx.Resolve("urn:isbn:0451450523")
	require.NoError(t, err)
	assert.Equal(t, "urn:isbn:0451450523", node.IRI)
}

func TestContext_ResolveVocabFallback(t *testing.T) {
	ctx := Default()

	node, err := ctx.Resolve("givenName")
	require.NoError(t, err)
	assert.Equal(t, FOAF+"givenName", node.IRI)
}

func TestContext_ResolveFailures(t *testing.T) {
	ctx := &Context{}

	_, err := ctx.Resolve("")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = ctx.Resolve("unknown")
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestContext_TermMappingWinsOverPrefix(t *testing.T) {
	ctx := &Context{
		Terms:    map[string]string{"rdf:type": "https://ex.org/override"},
		Prefixes: map[string]string{"rdf": RDF},
	}

	node, err := ctx.Resolve("rdf:type")
	require.NoError(t, err)
	assert.Equal(t, "https://ex.org/override", node.IRI)
}

func TestLoad(t *testing.T) {
	doc := `{
		"@context": {
			"@vocab": "https://ex.org/vocab#",
			"foaf": "http://xmlns.com/foaf/0.1/",
			"homepage": "http://xmlns.com/foaf/0.1/homepage"
		}
	}`
	file := filepath.Join(t.TempDir(), "context.jsonld")
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o600))

	ctx, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "https://ex.org/vocab#", ctx.Vocab)

	node, err := ctx.Resolve("homepage")
	require.NoError(t, err)
	assert.Equal(t, "http://xmlns.com/foaf/0.1/homepage", node.IRI)

	node, err = ctx.Resolve("foaf:knows")
	require.NoError(t, err)
	assert.Equal(t, FOAF+"knows", node.IRI)

	node, err = ctx.Resolve("anything")
	require.NoError(t, err)
	assert.Equal(t, "https://ex.org/vocab#anything", node.IRI)
}

func TestLoad_Failures(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.jsonld"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.jsonld")
	require.NoError(t, os.WriteFile(bad, []byte("{}"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}
