package domain

import "errors"

// Sentinel errors for the import pipeline. Parse-level errors abort the
// whole import; record-level errors are captured as ProcessingErrors and
// either skipped or fatal per ProcessOptions.SkipErrors.
var (
	// ErrUnsupportedFormat means the declared media type is not one the
	// parser understands.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMalformedInput means the content could not be decoded as the
	// declared media type.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedEntityType means the entity type is declared but has
	// no upsert rule. Batches for such types are rejected, never silently
	// dropped.
	ErrUnsupportedEntityType = errors.New("unsupported entity type")

	// ErrParentNotFound means a translation record could not resolve its
	// base row.
	ErrParentNotFound = errors.New("parent record not found")

	// ErrMissingRequiredField means a record lacks its natural-key field.
	ErrMissingRequiredField = errors.New("missing required field")
)
