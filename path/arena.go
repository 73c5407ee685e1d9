package path

import (
	"fmt"
	"strings"
	"sync"

	"github.com/c360/sparqlpath/errors"
	"github.com/c360/sparqlpath/rdf"
)

// Arena owns every path context created from a root. Contexts reference the
// context they were derived from through a non-owning index link, so chains
// can be walked iteratively without back-pointers or recursion.
type Arena struct {
	mu    sync.Mutex
	nodes []node
}

// node is one path context inside the arena.
type node struct {
	parent    int // index of the derived-from context, -1 at the root
	property  string
	subject   []rdf.Term // root only
	predicate rdf.Term   // predicate-step contexts only
	mutations []Mutation // locally attached mutation expressions
}

// Path is a handle to one context in an arena. Handles are small values and
// safe to copy; deriving new contexts appends to the shared arena.
type Path struct {
	arena *Arena
	id    int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Root creates a new root context anchored at the given subject term(s).
func (a *Arena) Root(subject ...rdf.Term) Path {
	return a.add(node{parent: -1, subject: subject})
}

func (a *Arena) add(n node) Path {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nodes = append(a.nodes, n)
	return Path{arena: a, id: len(a.nodes) - 1}
}

func (a *Arena) node(id int) node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nodes[id]
}

// Extend derives a new context one predicate step deeper.
func (p Path) Extend(property string, predicate rdf.Term) Path {
	return p.arena.add(node{parent: p.id, property: property, predicate: predicate})
}

// WithMutations derives a new context carrying the given mutation
// expressions. The traversal position is unchanged.
func (p Path) WithMutations(muts ...Mutation) Path {
	return p.arena.add(node{parent: p.id, mutations: muts})
}

// Property returns the accessed property name of this context, empty at the
// root and on mutation-carrying contexts.
func (p Path) Property() string {
	return p.arena.node(p.id).property
}

// Parent returns the context this one was derived from.
func (p Path) Parent() (Path, bool) {
	n := p.arena.node(p.id)
	if n.parent < 0 {
		return Path{}, false
	}
	return Path{arena: p.arena, id: n.parent}, true
}

// Expression materializes the path expression for this context: the root
// subject followed by every predicate step between root and here. Contexts
// added by WithMutations contribute no step.
func (p Path) Expression() Expression {
	var steps []rdf.Term
	subject := []rdf.Term(nil)

	for id := p.id; id >= 0; {
		n := p.arena.node(id)
		if n.parent < 0 {
			subject = n.subject
		} else if n.predicate != nil {
			steps = append(steps, n.predicate)
		}
		id = n.parent
	}

	expr := NewExpression(subject...)
	for i := len(steps) - 1; i >= 0; i-- {
		expr = expr.Extend(steps[i])
	}
	return expr
}

// Mutations accumulates every mutation expression attached along the chain
// from this context back to the root. Root-most mutations come first, so the
// order in which chained mutation calls were made is preserved, oldest first.
func (p Path) Mutations() []Mutation {
	var all []Mutation
	for id := p.id; id >= 0; {
		n := p.arena.node(id)
		if len(n.mutations) > 0 {
			all = append(append([]Mutation{}, n.mutations...), all...)
		}
		id = n.parent
	}
	return all
}

// String returns a textual description of the path for error messages: the
// root subject's local name followed by the accessed property chain.
func (p Path) String() string {
	var parts []string
	for id := p.id; id >= 0; {
		n := p.arena.node(id)
		if n.parent < 0 {
			parts = append(parts, rootLabel(n.subject))
		} else if n.property != "" {
			parts = append(parts, n.property)
		}
		id = n.parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

func rootLabel(subject []rdf.Term) string {
	if len(subject) == 0 {
		return "path"
	}
	if named, ok := subject[0].(rdf.NamedNode); ok {
		if local := named.LocalName(); local != "" {
			return local
		}
	}
	return subject[0].Value()
}

// Insert attaches an INSERT mutation adding the given values under this
// path's final predicate. The path must contain at least one predicate step.
func (p Path) Insert(values ...rdf.Term) (Path, error) {
	mut, err := p.valueMutation(MutationInsert, values)
	if err != nil {
		return Path{}, err
	}
	return p.WithMutations(mut), nil
}

// Delete attaches a DELETE mutation. With values, it deletes those exact
// values under the final predicate; without values, it deletes every value of
// the final triple pattern.
func (p Path) Delete(values ...rdf.Term) (Path, error) {
	if len(values) == 0 {
		return p.DeleteAll()
	}
	mut, err := p.valueMutation(MutationDelete, values)
	if err != nil {
		return Path{}, err
	}
	return p.WithMutations(mut), nil
}

// DeleteAll attaches a self-referential DELETE covering the path's final
// triple pattern regardless of object value.
func (p Path) DeleteAll() (Path, error) {
	expr := p.Expression()
	if expr.PredicateCount() < 1 {
		return Path{}, errors.WrapInvalid(
			fmt.Errorf("%s %w", p, errors.ErrPathTooShort),
			"Path", "DeleteAll", "mutation construction")
	}
	return p.WithMutations(Mutation{Type: MutationDelete, Domain: expr}), nil
}

// Set replaces every existing value of the final triple pattern with the
// given values: a self-referential DELETE followed by an INSERT.
func (p Path) Set(values ...rdf.Term) (Path, error) {
	expr := p.Expression()
	if expr.PredicateCount() < 1 {
		return Path{}, errors.WrapInvalid(
			fmt.Errorf("%s %w", p, errors.ErrPathTooShort),
			"Path", "Set", "mutation construction")
	}
	insert, err := p.valueMutation(MutationInsert, values)
	if err != nil {
		return Path{}, err
	}
	return p.WithMutations(Mutation{Type: MutationDelete, Domain: expr}, insert), nil
}

// valueMutation splits the path's final step off as the connecting predicate
// and roots the range expression at the given concrete values.
func (p Path) valueMutation(mt MutationType, values []rdf.Term) (Mutation, error) {
	expr := p.Expression()
	if expr.PredicateCount() < 1 {
		return Mutation{}, errors.WrapInvalid(
			fmt.Errorf("%s %w", p, errors.ErrPathTooShort),
			"Path", "valueMutation", "mutation construction")
	}
	return Mutation{
		Type:      mt,
		Domain:    expr[:len(expr)-1],
		Predicate: expr[len(expr)-1].Predicate,
		Range:     NewExpression(values...),
	}, nil
}
