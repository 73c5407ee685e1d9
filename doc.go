// Package sparqlpath compiles abstract property-path traversals over linked
// data into SPARQL query text.
//
// # Architecture
//
// The module is split into a purely computational core and a thin set of
// collaborators around it:
//
//   - rdf: the term data model (IRIs, literals, blank nodes, variables) and
//     the serializer that turns a single term into its exact SPARQL text.
//   - path: path expressions (subject + predicate chain), mutation
//     expressions, the arena of linked path contexts, and the handler
//     registry that resolves property accesses into path steps.
//   - sparql: the compiler. Given a fully materialized path or mutation
//     expression list, it deterministically produces SELECT, INSERT/DELETE
//     DATA, or INSERT/DELETE ... WHERE query text with collision-free
//     variable names and injection-safe term escaping.
//   - engine: executes compiled query text against a SPARQL responder over
//     NATS request/reply and decodes SPARQL 1.1 JSON results.
//
// # Data Flow
//
//	property chain → path.Registry → path.Path (expression / mutations)
//	              → sparql.Compiler → query text → engine.Engine → bindings
//
// The compiler holds no state between calls: every compilation allocates its
// own variable scope, so independent compilations may run concurrently with
// no coordination.
package sparqlpath
