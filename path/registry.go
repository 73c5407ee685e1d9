package path

import (
	"fmt"
	"sync"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/rdf"
)

// Handler produces a value for one named property access on a path.
type Handler interface {
	Handle(p Path) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(p Path) (any, error)

// Handle calls f.
func (f HandlerFunc) Handle(p Path) (any, error) { return f(p) }

// Resolver turns a friendly property name into a predicate term, in the
// manner of a JSON-LD context.
type Resolver interface {
	Resolve(property string) (rdf.NamedNode, error)
}

// Registry dispatches property accesses: named handlers first, and any
// unknown property becomes a further predicate step through the resolver.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	resolver Resolver
}

// NewRegistry creates a registry with the structural handlers pre-registered.
func NewRegistry(resolver Resolver) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		resolver: resolver,
	}

	r.Register("subject", HandlerFunc(func(p Path) (any, error) {
		return p.Expression().Subject(), nil
	}))
	r.Register("pathExpression", HandlerFunc(func(p Path) (any, error) {
		return p.Expression(), nil
	}))
	r.Register("mutationExpressions", HandlerFunc(func(p Path) (any, error) {
		return p.Mutations(), nil
	}))
	r.Register("toString", HandlerFunc(func(p Path) (any, error) {
		return p.String(), nil
	}))

	return r
}

// Register installs or replaces the handler for a property name.
func (r *Registry) Register(property string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[property] = h
}

// Access resolves one property access on a path. A registered handler wins;
// otherwise the property is resolved to a predicate and the returned value is
// the path extended by one step.
func (r *Registry) Access(p Path, property string) (any, error) {
	r.mu.RLock()
	h, ok := r.handlers[property]
	r.mu.RUnlock()

	if ok {
		return h.Handle(p)
	}

	predicate, err := r.resolver.Resolve(property)
	if err != nil {
		return nil, errors.WrapInvalid(
			fmt.Errorf("property %q: %w", property, err),
			"Registry", "Access", "predicate resolution")
	}
	return p.Extend(property, predicate), nil
}
