// Package errors provides structured error types for the fpga-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/hardware type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePack, errors.KindTypeMismatch).
//		Path("status", "code").
//		GoType("string").
//		HWType("i32").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhasePack, path, "string", "i32")
//	err := errors.ArrayLengthMismatch(errors.PhasePack, path, 4, 3)
//
// None of these conditions are transient: they indicate a descriptor or
// caller mismatch, so nothing in this module retries on them.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
