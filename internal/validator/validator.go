// Package validator applies per-entity-type, per-language required-field
// rules to an ImportBatch. Validation is a pure function of the batch: no
// I/O, deterministic output.
package validator

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

var (
	entityTypeValues = enumValues(domain.ValidEntityTypes)
	languageValues   = enumValues(domain.ValidLanguages)
)

func enumValues[T ~string](values []T) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Validator validates import batches before processing.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateBatch checks the batch identity and every record's required
// fields. Errors and warnings accumulate independently; Valid is strictly
// "no errors". Row 0 addresses the batch, rows 1..n the records.
func (v *Validator) ValidateBatch(batch domain.ImportBatch) domain.ValidationResult {
	errors := []domain.ValidationIssue{}
	warnings := []domain.ValidationIssue{}

	if err := validation.Validate(string(batch.EntityType),
		validation.Required.Error("entity type is required"),
		validation.In(entityTypeValues...).Error("unknown entity type"),
	); err != nil {
		errors = append(errors, domain.ValidationIssue{
			Row:     0,
			Field:   "entityType",
			Message: fmt.Sprintf("Invalid entity type: %s", batch.EntityType),
		})
	}

	if err := validation.Validate(string(batch.Language),
		validation.Required.Error("language is required"),
		validation.In(languageValues...).Error("unknown language"),
	); err != nil {
		errors = append(errors, domain.ValidationIssue{
			Row:     0,
			Field:   "language",
			Message: fmt.Sprintf("Invalid language: %s", batch.Language),
		})
	}

	for i, record := range batch.Records {
		row := i + 1

		if field := RequiredField(batch.EntityType, batch.Language); field != "" {
			if record.IsEmpty(field) {
				errors = append(errors, domain.ValidationIssue{
					Row:     row,
					Field:   field,
					Message: fmt.Sprintf("Required field '%s' is missing", field),
				})
			}
		}

		for _, field := range optionalFields(batch.EntityType, batch.Language) {
			if record.IsEmpty(field) {
				warnings = append(warnings, domain.ValidationIssue{
					Row:     row,
					Field:   field,
					Message: fmt.Sprintf("Optional field '%s' is missing", field),
				})
			}
		}
	}

	return domain.ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// RequiredField returns the single required field for an entity type and
// language, or "" when the entity type has no per-record rule. English
// batches require the base natural key; translations require "name".
func RequiredField(entityType domain.EntityType, lang domain.LanguageCode) string {
	switch entityType {
	case domain.EntityCategory:
		if lang.IsBase() {
			return "name_en"
		}
		return "name"
	case domain.EntityProduct:
		if lang.IsBase() {
			return "model_name_en"
		}
		return "name"
	}
	return ""
}

// optionalFields returns fields whose absence is worth a warning.
func optionalFields(entityType domain.EntityType, lang domain.LanguageCode) []string {
	if entityType == domain.EntityCategory && lang.IsBase() {
		return []string{"category_Alt_en"}
	}
	return nil
}
