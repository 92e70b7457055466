// Package errors provides the classified error primitives used across siteindex.
//
// A ClassifiedError carries a category, a severity, a retry hint and structured
// context. Errors are assembled through the fluent ErrorBuilder:
//
//	err := errors.NewError(errors.CategorySource, "primary content source unavailable").
//		Fatal().
//		WithContext("path", path).
//		WithCause(readErr).
//		Build()
//
// The CLI and HTTP adapters turn classified errors into exit codes and JSON
// payloads respectively.
package errors
