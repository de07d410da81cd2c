package errors

import "maps"

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryConfig represents an invalid [preprocessor.metadata] table.
	CategoryConfig ErrorCategory = "config"
	// CategoryValidation represents a malformed or disallowed frontmatter entry.
	CategoryValidation ErrorCategory = "validation"
	// CategoryProtocol represents a failure to read or write the host's JSON payload.
	CategoryProtocol ErrorCategory = "protocol"
	// CategoryMetadata represents an aggregate failure of the preprocessing run.
	CategoryMetadata ErrorCategory = "metadata"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal ErrorSeverity = "fatal" // Stops the build
	SeverityError ErrorSeverity = "error" // Fails the current chapter
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext)
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
