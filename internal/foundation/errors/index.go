package errors

// Context keys shared by the site index error constructors.
const (
	ContextKeyPath   = "path"
	ContextKeyReason = "reason"
)

// Snapshot failure reasons recorded under ContextKeyReason.
const (
	ReasonMissing    = "missing"
	ReasonUnreadable = "unreadable"
	ReasonSkipped    = "skipped"
)

// SourceUnavailable reports that the primary content source cannot be read.
// It is fatal to the generation step.
func SourceUnavailable(path string, cause error) *ClassifiedError {
	return WrapError(cause, CategorySource, "primary content source unavailable").
		Fatal().
		UserAction().
		WithContext(ContextKeyPath, path).
		Build()
}

// AuxiliarySourceSkipped reports an unreadable auxiliary source. Callers skip it.
func AuxiliarySourceSkipped(path string, cause error) *ClassifiedError {
	return WrapError(cause, CategorySource, "auxiliary content source skipped").
		Warning().
		WithContext(ContextKeyPath, path).
		WithContext(ContextKeyReason, ReasonSkipped).
		Build()
}

// SnapshotMissing reports an absent snapshot artifact. Readers fall back to a re-scan.
func SnapshotMissing(path string, cause error) *ClassifiedError {
	return WrapError(cause, CategorySnapshot, "site index snapshot missing").
		Warning().
		WithContext(ContextKeyPath, path).
		WithContext(ContextKeyReason, ReasonMissing).
		Build()
}

// SnapshotUnreadable reports a malformed or unreadable snapshot artifact.
func SnapshotUnreadable(path string, cause error) *ClassifiedError {
	return WrapError(cause, CategorySnapshot, "site index snapshot unreadable").
		Warning().
		WithContext(ContextKeyPath, path).
		WithContext(ContextKeyReason, ReasonUnreadable).
		Build()
}

// IsSourceUnavailable reports whether err is (or wraps) a SourceUnavailable error.
func IsSourceUnavailable(err error) bool {
	c, ok := AsClassified(err)
	return ok && c.IsCategory(CategorySource) && c.IsFatal()
}

// IsSnapshotMissing reports whether err is (or wraps) a SnapshotMissing error.
func IsSnapshotMissing(err error) bool {
	return hasSnapshotReason(err, ReasonMissing)
}

// IsSnapshotUnreadable reports whether err is (or wraps) a SnapshotUnreadable error.
func IsSnapshotUnreadable(err error) bool {
	return hasSnapshotReason(err, ReasonUnreadable)
}

func hasSnapshotReason(err error, reason string) bool {
	c, ok := AsClassified(err)
	if !ok || !c.IsCategory(CategorySnapshot) {
		return false
	}
	r, _ := c.Context().GetString(ContextKeyReason)
	return r == reason
}
