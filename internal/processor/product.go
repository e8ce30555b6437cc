package processor

import (
	"context"
	"fmt"

	"github.com/kanha-9770/bulkimport/internal/domain"
	"github.com/kanha-9770/bulkimport/internal/store"
)

// ProductStrategy upserts base products (en) and product translations
// (fr/hi/ta). The base natural key is model_name_en; translations are
// keyed by (productId, language).
type ProductStrategy struct {
	store store.ProductStore
}

// NewProductStrategy creates a ProductStrategy backed by the given store.
func NewProductStrategy(s store.ProductStore) *ProductStrategy {
	return &ProductStrategy{store: s}
}

func (s *ProductStrategy) RequiredField(lang domain.LanguageCode) string {
	if lang.IsBase() {
		return "model_name_en"
	}
	return "name"
}

func (s *ProductStrategy) Upsert(ctx context.Context, lang domain.LanguageCode, rec Record, opts UpsertOptions) (Outcome, error) {
	if lang.IsBase() {
		return s.upsertBase(ctx, rec, opts)
	}
	return s.upsertTranslation(ctx, lang, rec, opts)
}

func (s *ProductStrategy) upsertBase(ctx context.Context, rec Record, opts UpsertOptions) (Outcome, error) {
	modelName := rec.Mapped.String("model_name_en")

	existing, err := s.store.FindByModelName(ctx, modelName)
	if err != nil {
		return 0, fmt.Errorf("find product %q: %w", modelName, err)
	}

	if existing != nil {
		if !opts.UpdateExisting {
			return OutcomeSkipped, nil
		}
		if _, err := s.store.Update(ctx, existing.ID, upsertFields(rec.Mapped)); err != nil {
			return 0, fmt.Errorf("update product %q: %w", modelName, err)
		}
		return OutcomeUpdated, nil
	}

	if !opts.CreateMissing {
		return OutcomeSkipped, nil
	}
	if _, err := s.store.Create(ctx, upsertFields(rec.Mapped)); err != nil {
		return 0, fmt.Errorf("create product %q: %w", modelName, err)
	}
	return OutcomeCreated, nil
}

func (s *ProductStrategy) upsertTranslation(ctx context.Context, lang domain.LanguageCode, rec Record, opts UpsertOptions) (Outcome, error) {
	productID, err := s.resolveParent(ctx, rec, opts)
	if err != nil {
		return 0, err
	}

	fields := upsertFields(rec.Mapped, "model_name_en", "productId")

	existing, err := s.store.FindTranslation(ctx, productID, lang)
	if err != nil {
		return 0, fmt.Errorf("find product translation (%d, %s): %w", productID, lang, err)
	}

	if existing != nil {
		if !opts.UpdateExisting {
			return OutcomeSkipped, nil
		}
		if _, err := s.store.UpdateTranslation(ctx, existing.ID, fields); err != nil {
			return 0, fmt.Errorf("update product translation (%d, %s): %w", productID, lang, err)
		}
		return OutcomeUpdated, nil
	}

	if !opts.CreateMissing {
		return OutcomeSkipped, nil
	}
	if _, err := s.store.CreateTranslation(ctx, productID, lang, fields); err != nil {
		return 0, fmt.Errorf("create product translation (%d, %s): %w", productID, lang, err)
	}
	return OutcomeCreated, nil
}

func (s *ProductStrategy) resolveParent(ctx context.Context, rec Record, opts UpsertOptions) (int64, error) {
	if id, ok := recordID(rec.Raw, "productId"); ok {
		return id, nil
	}

	modelName := rec.Raw.String("model_name_en")
	if modelName == "" || !opts.CreateRelations {
		return 0, fmt.Errorf("%w: cannot identify parent product", domain.ErrParentNotFound)
	}

	parent, err := s.store.FindByModelName(ctx, modelName)
	if err != nil {
		return 0, fmt.Errorf("find parent product %q: %w", modelName, err)
	}
	if parent == nil {
		return 0, fmt.Errorf("%w: no product named %q", domain.ErrParentNotFound, modelName)
	}
	return parent.ID, nil
}
