package errors

// Convenience constructors for common error patterns

// Config errors

func ConfigNotFound(path string) *ModDocError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *ModDocError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration value").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Ingestion errors

// IngestionFailed marks a whole module as unreadable. Fatal for that module
// only; batch callers keep going with the remaining modules.
func IngestionFailed(module string, cause error) *ModDocError {
	return Wrap(cause, CategoryIngest, SeverityFatal, "module ingestion failed").
		WithContext("module", module)
}

func CommentSourceUnreadable(path string, cause error) *ModDocError {
	return Wrap(cause, CategoryComments, SeverityFatal, "comment source unreadable").
		WithContext("path", path)
}

// SymbolResolutionAnomaly records ambiguous external type metadata. The type
// degrades to an unresolved kind and ingestion continues.
func SymbolResolutionAnomaly(fqn string, cause error) *ModDocError {
	return Wrap(cause, CategorySymbol, SeverityWarning, "external type metadata unresolved").
		WithContext("type", fqn)
}

// Pipeline errors

func TransformFailed(entity string, cause error) *ModDocError {
	return Wrap(cause, CategoryTransform, SeverityWarning, "transform failed for entity").
		WithContext("entity", entity)
}

func RenderFailed(renderer string, cause error) *ModDocError {
	return Wrap(cause, CategoryRender, SeverityError, "renderer failed").
		WithContext("renderer", renderer)
}

// Infrastructure errors

func WorkspaceError(operation string, cause error) *ModDocError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "workspace operation failed").
		WithContext("operation", operation)
}

func GitFetchError(url string, cause error) *ModDocError {
	return WrapRetryable(cause, CategoryGit, SeverityWarning, "content repository fetch failed").
		WithContext("url", url)
}

func InternalError(message string, cause error) *ModDocError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
