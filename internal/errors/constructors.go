package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DocConfError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DocConfError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DocConfError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// External collaborator errors

// APIDocBuildFailed reports a failed step of the external API-extraction build.
func APIDocBuildFailed(step string, cause error) *DocConfError {
	return Wrap(cause, CategoryAPIDoc, SeverityFatal, "API documentation build failed").
		WithContext("step", step)
}

func RenderFailed(builder string, cause error) *DocConfError {
	return Wrap(cause, CategoryRender, SeverityFatal, "documentation render failed").
		WithContext("builder", builder)
}

// Processing errors

func HookFailed(event, document string, cause error) *DocConfError {
	return Wrap(cause, CategoryHook, SeverityFatal, "event handler failed").
		WithContext("event", event).
		WithContext("document", document)
}

func FileSystemError(operation, path string, cause error) *DocConfError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *DocConfError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
