// Package mapper derives source fields from a batch, knows the canonical
// target field set per entity type and language, and builds the initial
// case-insensitive auto-mapping the operator can then override.
package mapper

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// SourceFields returns the union of all keys across all records in the
// batch, in first-seen record order. RawRecord is a plain map, so key
// order within one record is not recoverable; keys contributed by the
// same record are sorted to keep the result deterministic.
func SourceFields(batch domain.ImportBatch) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, record := range batch.Records {
		var fromThisRecord []string
		for key := range record {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fromThisRecord = append(fromThisRecord, key)
		}
		sort.Strings(fromThisRecord)
		fields = append(fields, fromThisRecord...)
	}
	return fields
}

// TargetFields returns the canonical target field set for the chosen
// entity type and language. Entity types without a concrete schema get a
// generic fallback.
func TargetFields(entityType domain.EntityType, lang domain.LanguageCode) []string {
	switch entityType {
	case domain.EntityCategory:
		if lang.IsBase() {
			return []string{
				"name_en",
				"category_icon",
				"category_image",
				"category_Alt_en",
				"categoryLink_en",
				"specification_image",
				"specification_image_alt",
			}
		}
		return []string{"name", "iconAlt", "categoryLink", "description"}
	case domain.EntityProduct:
		if lang.IsBase() {
			return []string{
				"model_name_en",
				"product_name",
				"productImage",
				"productImage_Alt",
				"status_en",
				"stars",
				"reviews",
				"productDescription_en",
				"model_description",
				"introduction",
			}
		}
		return []string{"name", "imageAlt", "status", "productDescription", "model_description", "introduction"}
	}
	return []string{"id", "name", "description"}
}

// AutoMap pairs each source field with the target field whose name matches
// case-insensitively. Unmatched source fields map to SkipField.
func AutoMap(sourceFields, targetFields []string) domain.FieldMapping {
	mapping := make(domain.FieldMapping, len(sourceFields))
	for _, source := range sourceFields {
		mapping[source] = domain.SkipField
		for _, target := range targetFields {
			if strings.EqualFold(source, target) {
				mapping[source] = target
				break
			}
		}
	}
	return mapping
}

// CheckMapping rejects two source fields mapped to the same target unless
// the operator opted into last-one-wins semantics.
func CheckMapping(mapping domain.FieldMapping, opts domain.MappingOptions) error {
	if opts.AllowDuplicateTargets {
		return nil
	}
	used := make(map[string]string, len(mapping))
	for source, target := range mapping {
		if target == "" || target == domain.SkipField {
			continue
		}
		if prev, ok := used[target]; ok {
			first, second := prev, source
			if second < first {
				first, second = second, first
			}
			return fmt.Errorf("source fields %q and %q both map to target %q", first, second, target)
		}
		used[target] = source
	}
	return nil
}

// Apply produces the canonical record for one raw record: target field
// names keyed by the mapping, skipped fields dropped. The input record is
// not modified.
func Apply(record domain.RawRecord, mapping domain.FieldMapping) domain.RawRecord {
	mapped := make(domain.RawRecord, len(mapping))
	for source, target := range mapping {
		if target == "" || target == domain.SkipField {
			continue
		}
		if value, ok := record[source]; ok {
			mapped[target] = value
		}
	}
	return mapped
}
