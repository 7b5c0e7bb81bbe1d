// Package errors provides structured error types for the discipline library.
//
// Errors are categorized by Op (which operation failed) and Kind (error
// category). The Error type includes the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpFactorize, errors.KindRange).
//		Value(n).
//		Detail("cannot factorize one or zero").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Shape(errors.OpMakeDict, "expecting a tuple")
//	err := errors.Injected(errors.OpFactorize, "factor", 5)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Op plus Kind, so callers can test for a failure category
// without comparing message strings.
//
// Failure is always local to a call: operations fail fast at the first
// violation and never collect multiple errors.
package errors
