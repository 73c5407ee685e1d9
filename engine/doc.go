// Package engine executes compiled SPARQL queries over NATS request/reply.
//
// The engine sends each query as a JSON QueryRequest on a configurable
// subject and expects the responder to answer with either a SPARQL 1.1
// JSON results document (reads) or an UpdateResponse acknowledgement
// (writes). Responses to read queries are schema-validated before
// decoding so malformed endpoints fail loudly instead of producing
// empty bindings.
//
// Transient failures (timeouts, lost connections) are retried with
// exponential backoff; invalid queries and rejected updates are not.
package engine
