// Package store is the keyed persistence boundary for the catalog. The
// processor only sees these interfaces: find-by-natural-key, create, and
// update per entity kind. Postgres backs them in production; the in-memory
// implementation substitutes in tests.
package store

import (
	"context"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// Fields is the set of column values an upsert writes. The processor
// builds it from the mapped record; for updates it contains only the
// non-empty incoming values, which is what keeps updates fill-don't-
// clobber.
type Fields map[string]string

// CategoryStore persists base categories and their translations.
// Find methods return (nil, nil) when no row matches.
type CategoryStore interface {
	FindByName(ctx context.Context, nameEN string) (*domain.Category, error)
	Create(ctx context.Context, fields Fields) (*domain.Category, error)
	Update(ctx context.Context, id int64, fields Fields) (*domain.Category, error)

	FindTranslation(ctx context.Context, categoryID int64, lang domain.LanguageCode) (*domain.CategoryTranslation, error)
	CreateTranslation(ctx context.Context, categoryID int64, lang domain.LanguageCode, fields Fields) (*domain.CategoryTranslation, error)
	UpdateTranslation(ctx context.Context, id int64, fields Fields) (*domain.CategoryTranslation, error)

	List(ctx context.Context) ([]domain.Category, error)
}

// ProductStore persists base products and their translations.
// Find methods return (nil, nil) when no row matches.
type ProductStore interface {
	FindByModelName(ctx context.Context, modelNameEN string) (*domain.Product, error)
	Create(ctx context.Context, fields Fields) (*domain.Product, error)
	Update(ctx context.Context, id int64, fields Fields) (*domain.Product, error)

	FindTranslation(ctx context.Context, productID int64, lang domain.LanguageCode) (*domain.ProductTranslation, error)
	CreateTranslation(ctx context.Context, productID int64, lang domain.LanguageCode, fields Fields) (*domain.ProductTranslation, error)
	UpdateTranslation(ctx context.Context, id int64, fields Fields) (*domain.ProductTranslation, error)

	List(ctx context.Context) ([]domain.Product, error)
}
