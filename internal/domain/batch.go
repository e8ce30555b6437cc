package domain

import "strings"

// EntityType identifies which catalog entity a batch addresses.
type EntityType string

const (
	EntityCategory               EntityType = "category"
	EntityProduct                EntityType = "product"
	EntityAdvantage              EntityType = "advantage"
	EntitySpecification          EntityType = "specification"
	EntityApplicationData        EntityType = "applicationData"
	EntityTechnicalSpecification EntityType = "technicalSpecification"
	EntityRelatedProduct         EntityType = "relatedProduct"
	EntityProcessStep            EntityType = "processStep"
	EntityCTA                    EntityType = "cta"
)

// ValidEntityTypes contains all declared entity types. Only category and
// product have upsert rules; the rest are rejected by the processor.
var ValidEntityTypes = []EntityType{
	EntityCategory,
	EntityProduct,
	EntityAdvantage,
	EntitySpecification,
	EntityApplicationData,
	EntityTechnicalSpecification,
	EntityRelatedProduct,
	EntityProcessStep,
	EntityCTA,
}

// IsValidEntityType checks if an entity type is declared.
func IsValidEntityType(et EntityType) bool {
	for _, v := range ValidEntityTypes {
		if v == et {
			return true
		}
	}
	return false
}

// LanguageCode identifies the language a batch addresses. English is the
// base language: it writes the authoritative row, every other code writes
// a translation row attached to a base row.
type LanguageCode string

const (
	LangEnglish LanguageCode = "en"
	LangFrench  LanguageCode = "fr"
	LangHindi   LanguageCode = "hi"
	LangTamil   LanguageCode = "ta"
)

// ValidLanguages contains all supported language codes.
var ValidLanguages = []LanguageCode{LangEnglish, LangFrench, LangHindi, LangTamil}

// IsValidLanguage checks if a language code is supported.
func IsValidLanguage(lang LanguageCode) bool {
	for _, v := range ValidLanguages {
		if v == lang {
			return true
		}
	}
	return false
}

// IsBase reports whether the language addresses base rows rather than
// translation rows.
func (l LanguageCode) IsBase() bool {
	return l == LangEnglish
}

// RawRecord is one loosely-typed source row: an open mapping from field
// name to a JSON scalar, nested object, or array. Keys are not constrained
// at parse time.
type RawRecord map[string]any

// String returns the field rendered as a string. Non-string scalars
// (numbers, booleans) are not converted; mapping decides what to do with
// them via the raw value.
func (r RawRecord) String(field string) string {
	if v, ok := r[field]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsEmpty reports whether the field is absent, nil, or a blank string.
// This is the emptiness rule used both by required-field validation and
// by fill-don't-clobber updates.
func (r RawRecord) IsEmpty(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ImportBatch is the uniform output of the parser: one entity type, one
// language, and an ordered list of raw records. Record order is preserved
// end-to-end; it is the only addressing scheme for row-numbered errors
// (1-based row = index+1).
type ImportBatch struct {
	EntityType EntityType   `json:"entityType"`
	Language   LanguageCode `json:"language"`
	Records    []RawRecord  `json:"records"`
}
