// Package processor performs the find-or-create/update decision per record
// against the store. Each supported entity type contributes one Strategy;
// declared-but-unhandled types are rejected instead of silently no-oped.
package processor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/mapper"
)

// Outcome is the per-record result of an upsert decision.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeSkipped
)

// UpsertOptions is the slice of batch options a strategy needs for one
// record.
type UpsertOptions struct {
	UpdateExisting  bool
	CreateMissing   bool
	CreateRelations bool
}

// Record is one row as the strategies see it: Mapped carries the target
// fields to write; Raw keeps the original source fields, which is where
// translation rows carry their parent reference (categoryId/name_en is a
// source-side hint, not a target field).
type Record struct {
	Raw    domain.RawRecord
	Mapped domain.RawRecord
}

// Strategy performs upserts for one entity type.
type Strategy interface {
	// RequiredField returns the natural-key field the strategy needs for
	// the given language.
	RequiredField(lang domain.LanguageCode) string
	// Upsert applies one record: base-row upsert for the base language,
	// translation upsert otherwise.
	Upsert(ctx context.Context, lang domain.LanguageCode, rec Record, opts UpsertOptions) (Outcome, error)
}

// Processor runs mapped batches through entity strategies sequentially.
// Records sharing a natural key must not race the exists-check, so there
// is deliberately no per-record concurrency here.
type Processor struct {
	strategies map[domain.EntityType]Strategy
}

// New creates a Processor with the given strategies.
func New(strategies map[domain.EntityType]Strategy) *Processor {
	return &Processor{strategies: strategies}
}

// Process applies the field mapping to every record and upserts it.
// Per-record failures become ProcessingErrors; SkipErrors decides whether
// the batch continues past them. Success follows the best-effort rule:
// true iff there were no errors or SkipErrors was set.
func (p *Processor) Process(ctx context.Context, batch domain.ImportBatch, mapping domain.FieldMapping,
	mopts domain.MappingOptions, opts domain.ProcessOptions) domain.ProcessingResult {

	result := domain.ProcessingResult{Errors: []domain.ProcessingError{}}

	strategy, ok := p.strategies[batch.EntityType]
	if !ok {
		result.Errors = append(result.Errors, domain.ProcessingError{
			Row:     0,
			Message: fmt.Sprintf("%v: %s", domain.ErrUnsupportedEntityType, batch.EntityType),
		})
		result.Success = opts.SkipErrors
		return result
	}

	upsertOpts := UpsertOptions{
		UpdateExisting:  opts.UpdateExisting,
		CreateMissing:   opts.CreateMissing,
		CreateRelations: mopts.CreateRelations,
	}

	for i, record := range batch.Records {
		row := i + 1

		outcome, err := p.processRecord(ctx, strategy, batch.Language, record, mapping, mopts, upsertOpts)
		if err != nil {
			result.Errors = append(result.Errors, domain.ProcessingError{Row: row, Message: err.Error()})
			if !opts.SkipErrors {
				break
			}
			continue
		}

		switch outcome {
		case OutcomeCreated:
			result.Created++
		case OutcomeUpdated:
			result.Updated++
		case OutcomeSkipped:
			result.Skipped++
		}
	}

	result.Processed = result.Created + result.Updated + result.Skipped
	result.Success = len(result.Errors) == 0 || opts.SkipErrors
	return result
}

func (p *Processor) processRecord(ctx context.Context, strategy Strategy, lang domain.LanguageCode,
	record domain.RawRecord, mapping domain.FieldMapping, mopts domain.MappingOptions,
	opts UpsertOptions) (Outcome, error) {

	if !mopts.SkipMissingFields {
		for source, target := range mapping {
			if target == "" || target == domain.SkipField {
				continue
			}
			if _, ok := record[source]; !ok {
				return 0, fmt.Errorf("mapped field %q is missing from the record", source)
			}
		}
	}

	mapped := mapper.Apply(record, mapping)

	// The validator already rejected records without their natural key,
	// but the processor re-checks: the mapping can rename or drop it.
	if field := strategy.RequiredField(lang); mapped.IsEmpty(field) {
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingRequiredField, field)
	}

	return strategy.Upsert(ctx, lang, Record{Raw: record, Mapped: mapped}, opts)
}

// upsertFields renders the non-empty values of a mapped record into store
// fields, excluding the listed target names. Only non-empty values ever
// reach an update, which is what makes updates fill instead of clobber.
func upsertFields(record domain.RawRecord, exclude ...string) map[string]string {
	fields := make(map[string]string, len(record))
	for key, value := range record {
		if record.IsEmpty(key) {
			continue
		}
		excluded := false
		for _, ex := range exclude {
			if key == ex {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if s, ok := scalarString(value); ok {
			fields[key] = s
		}
	}
	return fields
}

// scalarString renders JSON scalars as strings. Nested objects and arrays
// have no column representation and are dropped.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// recordID reads an explicit numeric foreign key (categoryId/productId)
// from a record. JSON numbers arrive as float64, CSV cells as strings.
func recordID(record domain.RawRecord, field string) (int64, bool) {
	v, ok := record[field]
	if !ok || v == nil {
		return 0, false
	}
	switch id := v.(type) {
	case float64:
		return int64(id), true
	case int:
		return int64(id), true
	case int64:
		return id, true
	case string:
		if id == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
