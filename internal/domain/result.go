package domain

// ValidationIssue is one row-level validation finding. Row 0 addresses the
// batch itself (entity type / language); rows 1..n address records.
type ValidationIssue struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the validator's verdict on a batch. Valid is true
// iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// SkipField is the mapping target meaning "do not import this source
// field". Matches the wizard's "Do not import" option.
const SkipField = "none"

// FieldMapping maps source field names to target field names. A source
// field absent from the mapping, or mapped to SkipField, is not imported.
type FieldMapping map[string]string

// IsSkipped reports whether the source field should not be imported.
func (m FieldMapping) IsSkipped(sourceField string) bool {
	target, ok := m[sourceField]
	return !ok || target == "" || target == SkipField
}

// MappingOptions controls how the mapper and processor treat the mapping.
type MappingOptions struct {
	// SkipMissingFields makes the processor ignore mapped fields that are
	// absent from a record instead of failing the record.
	SkipMissingFields bool `json:"skipMissingFields"`
	// CreateRelations allows translation records to resolve and attach to
	// their parent base row via the base natural key.
	CreateRelations bool `json:"createRelations"`
	// UpdateExisting allows upserts to update rows that already exist.
	UpdateExisting bool `json:"updateExisting"`
	// AllowDuplicateTargets permits two source fields to map to the same
	// target field (last applied wins). Rejected by default.
	AllowDuplicateTargets bool `json:"allowDuplicateTargets"`
}

// ProcessOptions controls the upsert processor's per-record policy.
type ProcessOptions struct {
	// SkipErrors continues past per-record failures instead of aborting
	// the batch at the first one.
	SkipErrors bool `json:"skipErrors"`
	// UpdateExisting updates rows found by natural key; when false,
	// existing rows are counted as skipped.
	UpdateExisting bool `json:"updateExisting"`
	// CreateMissing creates rows not found by natural key; when false,
	// absent rows are counted as skipped.
	CreateMissing bool `json:"createMissing"`
}

// ProcessingError is one per-record processing failure.
type ProcessingError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ProcessingResult is the outcome of running a batch through the upsert
// processor. Processed = Created + Updated + Skipped always holds; rows
// that errored are counted in none of them.
//
// Success stays true in skip-errors mode even with partial failures;
// callers distinguish a clean run from a best-effort one by inspecting
// Errors, not Success.
type ProcessingResult struct {
	Success   bool              `json:"success"`
	Processed int               `json:"processed"`
	Created   int               `json:"created"`
	Updated   int               `json:"updated"`
	Skipped   int               `json:"skipped"`
	Errors    []ProcessingError `json:"errors"`
}
