// Package errors provides the classified error primitives used by the metadata preprocessor.
//
// Every error that reaches the command line carries a category (config,
// validation, protocol, metadata, internal) and a severity. The CLI adapter
// turns the category into a process exit code the host can act on.
//
// Example usage:
//
//	err := errors.ValidationError("metadata key not allowed").
//		WithContext("chapter", ch.Name).
//		WithContext("key", key).
//		Build()
package errors
