// Package errors provides standardized error handling patterns for sparqlpath.
//
// # Overview
//
// The package implements a three-class error classification system: Transient
// (temporary, retryable), Invalid (bad input, non-retryable), and Fatal
// (unrecoverable, stop processing).
//
// Compilation errors are always Invalid: the caller supplied a path or
// mutation expression the compiler cannot turn into query text, and retrying
// the same input cannot succeed. Engine transport errors are usually
// Transient; configuration errors are Fatal.
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Return standard error variables for known conditions:
//
//	if len(expr) < 2 {
//	    return errors.ErrPathTooShort
//	}
//
// Wrap errors with component context:
//
//	if err != nil {
//	    return errors.WrapInvalid(err, "Compiler", "Compile", "path walk")
//	}
//
// Branch on classification at the call site:
//
//	if errors.IsTransient(err) {
//	    // safe to retry
//	}
package errors
