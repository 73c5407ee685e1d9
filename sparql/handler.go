package sparql

import "github.com/c360/sparqlpath/path"

// RegisterHandler installs the "sparql" property handler on a registry:
// accessing that property on a path yields its compiled query text.
func RegisterHandler(reg *path.Registry, c *Compiler) {
	reg.Register("sparql", path.HandlerFunc(func(p path.Path) (any, error) {
		return c.Compile(FromPath(p))
	}))
}
