package sparql

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/path"
)

// Request carries the fully materialized inputs of one compilation: the
// path's textual description (for error messages), the accessed property
// name, and the expression and/or mutation expressions to compile.
type Request struct {
	// Description identifies the path in error messages.
	Description string
	// Property is the accessed name the final query variable is derived
	// from; empty falls back to "result".
	Property string
	// Expression is the read traversal chain, or nil.
	Expression path.Expression
	// Mutations is the ordered mutation expression list, or nil.
	Mutations []path.Mutation
}

// FromPath builds a compilation request from a path context, accumulating its
// mutation expressions through the parent chain.
func FromPath(p path.Path) Request {
	return Request{
		Description: p.String(),
		Property:    p.Property(),
		Expression:  p.Expression(),
		Mutations:   p.Mutations(),
	}
}

// Compiler turns compilation requests into SPARQL query text. The zero value
// is usable; New adds optional logging.
type Compiler struct {
	logger *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for compilation debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Compile produces the query text for a request. A non-empty mutation list
// compiles to a write query: one block per mutation expression, each with its
// own fresh variable scope, joined with ";\n" in the given order. Otherwise
// the request compiles to a read query over its path expression.
func (c *Compiler) Compile(req Request) (string, error) {
	if len(req.Mutations) > 0 {
		return c.compileWrite(req)
	}
	return c.compileRead(req)
}

func (c *Compiler) compileWrite(req Request) (string, error) {
	blocks := make([]string, 0, len(req.Mutations))
	for _, mut := range req.Mutations {
		block, err := c.CompileMutation(mut)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	query := strings.Join(blocks, ";\n")
	c.logger.Debug("compiled write query", "path", req.Description, "blocks", len(blocks))
	return query, nil
}

func (c *Compiler) compileRead(req Request) (string, error) {
	desc := req.Description
	if desc == "" {
		desc = "path"
	}

	if req.Expression == nil {
		return "", errors.WrapInvalid(
			fmt.Errorf("%s %w", desc, errors.ErrNoPathExpression),
			"Compiler", "Compile", "read compilation")
	}
	if len(req.Expression) < 2 {
		return "", errors.WrapInvalid(
			fmt.Errorf("%s %w", desc, errors.ErrPathTooShort),
			"Compiler", "Compile", "read compilation")
	}

	scope := NewVariableScope()
	queryVar := scope.Allocate(sanitizeVariable(req.Property))

	patterns, err := walkChain(req.Expression, queryVar, scope)
	if err != nil {
		return "", errors.WrapInvalid(
			fmt.Errorf("%s: %w", desc, err),
			"Compiler", "Compile", "path walk")
	}

	query := fmt.Sprintf("SELECT ?%s WHERE { %s }", queryVar, strings.Join(patterns, " "))
	c.logger.Debug("compiled read query", "path", desc, "variable", queryVar, "patterns", len(patterns))
	return query, nil
}
