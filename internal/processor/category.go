package processor

import (
	"context"
	"fmt"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/store"
)

// CategoryStrategy upserts base categories (en) and category translations
// (fr/hi/ta). The base natural key is name_en; translations are keyed by
// (categoryId, language).
type CategoryStrategy struct {
	store store.CategoryStore
}

// NewCategoryStrategy creates a CategoryStrategy backed by the given store.
func NewCategoryStrategy(s store.CategoryStore) *CategoryStrategy {
	return &CategoryStrategy{store: s}
}

func (s *CategoryStrategy) RequiredField(lang domain.LanguageCode) string {
	if lang.IsBase() {
		return "name_en"
	}
	return "name"
}

func (s *CategoryStrategy) Upsert(ctx context.Context, lang domain.LanguageCode, rec Record, opts UpsertOptions) (Outcome, error) {
	if lang.IsBase() {
		return s.upsertBase(ctx, rec, opts)
	}
	return s.upsertTranslation(ctx, lang, rec, opts)
}

func (s *CategoryStrategy) upsertBase(ctx context.Context, rec Record, opts UpsertOptions) (Outcome, error) {
	nameEN := rec.Mapped.String("name_en")

	existing, err := s.store.FindByName(ctx, nameEN)
	if err != nil {
		return 0, fmt.Errorf("find category %q: %w", nameEN, err)
	}

	if existing != nil {
		if !opts.UpdateExisting {
			return OutcomeSkipped, nil
		}
		if _, err := s.store.Update(ctx, existing.ID, upsertFields(rec.Mapped)); err != nil {
			return 0, fmt.Errorf("update category %q: %w", nameEN, err)
		}
		return OutcomeUpdated, nil
	}

	if !opts.CreateMissing {
		return OutcomeSkipped, nil
	}
	if _, err := s.store.Create(ctx, upsertFields(rec.Mapped)); err != nil {
		return 0, fmt.Errorf("create category %q: %w", nameEN, err)
	}
	return OutcomeCreated, nil
}

func (s *CategoryStrategy) upsertTranslation(ctx context.Context, lang domain.LanguageCode, rec Record, opts UpsertOptions) (Outcome, error) {
	categoryID, err := s.resolveParent(ctx, rec, opts)
	if err != nil {
		return 0, err
	}

	// name_en and categoryId ride along on translation rows only to locate
	// the parent; they are not translation columns.
	fields := upsertFields(rec.Mapped, "name_en", "categoryId")

	existing, err := s.store.FindTranslation(ctx, categoryID, lang)
	if err != nil {
		return 0, fmt.Errorf("find category translation (%d, %s): %w", categoryID, lang, err)
	}

	if existing != nil {
		if !opts.UpdateExisting {
			return OutcomeSkipped, nil
		}
		if _, err := s.store.UpdateTranslation(ctx, existing.ID, fields); err != nil {
			return 0, fmt.Errorf("update category translation (%d, %s): %w", categoryID, lang, err)
		}
		return OutcomeUpdated, nil
	}

	if !opts.CreateMissing {
		return OutcomeSkipped, nil
	}
	if _, err := s.store.CreateTranslation(ctx, categoryID, lang, fields); err != nil {
		return 0, fmt.Errorf("create category translation (%d, %s): %w", categoryID, lang, err)
	}
	return OutcomeCreated, nil
}

// resolveParent finds the base category a translation row belongs to: an
// explicit categoryId wins; otherwise the base natural key name_en
// supplied alongside the record is looked up, when relation resolution is
// enabled.
func (s *CategoryStrategy) resolveParent(ctx context.Context, rec Record, opts UpsertOptions) (int64, error) {
	if id, ok := recordID(rec.Raw, "categoryId"); ok {
		return id, nil
	}

	nameEN := rec.Raw.String("name_en")
	if nameEN == "" || !opts.CreateRelations {
		return 0, fmt.Errorf("%w: cannot identify parent category", domain.ErrParentNotFound)
	}

	parent, err := s.store.FindByName(ctx, nameEN)
	if err != nil {
		return 0, fmt.Errorf("find parent category %q: %w", nameEN, err)
	}
	if parent == nil {
		return 0, fmt.Errorf("%w: no category named %q", domain.ErrParentNotFound, nameEN)
	}
	return parent.ID, nil
}
