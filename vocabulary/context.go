package vocabulary

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/rdf"
)

// ErrUnknownProperty indicates a property name the context cannot resolve.
var ErrUnknownProperty = stderrors.New("property not defined in context")

// Context resolves friendly property names into predicate IRIs. It mirrors a
// JSON-LD context: explicit term mappings, prefix expansion, and an optional
// base vocabulary for everything else.
type Context struct {
	// Terms maps property names directly to absolute IRIs.
	Terms map[string]string `json:"terms,omitempty"`
	// Prefixes maps prefix labels to namespace IRIs for "prefix:local" names.
	Prefixes map[string]string `json:"prefixes,omitempty"`
	// Vocab, when set, prefixes any otherwise unresolved property name.
	Vocab string `json:"vocab,omitempty"`
}

// Default returns a context with the well-known namespaces registered as
// prefixes and FOAF as the fallback vocabulary.
func Default() *Context {
	return &Context{
		Prefixes: map[string]string{
			"rdf":  RDF,
			"rdfs": RDFS,
			"xsd":  XSD,
			"foaf": FOAF,
		},
		Vocab: FOAF,
	}
}

// Resolve turns a property name into a predicate term.
//
// Resolution order: explicit term mapping, absolute IRI passthrough,
// prefix expansion, then the base vocabulary.
func (c *Context) Resolve(property string) (rdf.NamedNode, error) {
	if property == "" {
		return rdf.NamedNode{}, ErrUnknownProperty
	}

	if iri, ok := c.Terms[property]; ok {
		return rdf.NamedNode{IRI: iri}, nil
	}

	if isAbsoluteIRI(property) {
		return rdf.NamedNode{IRI: property}, nil
	}

	if prefix, local, ok := strings.Cut(property, ":"); ok {
		if ns, known := c.Prefixes[prefix]; known {
			return rdf.NamedNode{IRI: ns + local}, nil
		}
	}

	if c.Vocab != "" {
		return rdf.NamedNode{IRI: c.Vocab + property}, nil
	}

	return rdf.NamedNode{}, ErrUnknownProperty
}

// isAbsoluteIRI reports whether the name already is an absolute identifier.
func isAbsoluteIRI(s string) bool {
	return strings.Contains(s, "://") || strings.HasPrefix(s, "urn:")
}

// jsonLDDocument is the on-disk shape accepted by Load: a JSON-LD style
// document whose @context maps terms and prefixes.
type jsonLDDocument struct {
	Context map[string]string `json:"@context"`
}

// Load reads a JSON-LD style context document from a file. Mappings whose
// value ends in '#' or '/' become prefixes; "@vocab" sets the base
// vocabulary; everything else becomes a direct term mapping.
func Load(filename string) (*Context, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Context", "Load", "context file read")
	}

	var doc jsonLDDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapInvalid(err, "Context", "Load", "context file parse")
	}
	if doc.Context == nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("missing @context object"), "Context", "Load", "context file parse")
	}

	ctx := &Context{
		Terms:    make(map[string]string),
		Prefixes: make(map[string]string),
	}
	for name, iri := range doc.Context {
		switch {
		case name == "@vocab":
			ctx.Vocab = iri
		case strings.HasSuffix(iri, "#") || strings.HasSuffix(iri, "/"):
			ctx.Prefixes[name] = iri
		default:
			ctx.Terms[name] = iri
		}
	}
	return ctx, nil
}
