package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

func TestMemoryCategoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryCategoryStore()

	missing, err := s.FindByName(ctx, "Filling Machines")
	require.NoError(t, err)
	assert.Nil(t, missing, "absent rows return (nil, nil)")

	created, err := s.Create(ctx, Fields{
		"name_en":       "Filling Machines",
		"category_icon": "/icons/fill.svg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "/icons/fill.svg", created.CategoryIcon)

	found, err := s.FindByName(ctx, "Filling Machines")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	updated, err := s.Update(ctx, created.ID, Fields{"category_image": "/img/fill.png"})
	require.NoError(t, err)
	assert.Equal(t, "/img/fill.png", updated.CategoryImage)
	assert.Equal(t, "/icons/fill.svg", updated.CategoryIcon, "untouched fields survive updates")

	// Unknown columns are ignored, not stored.
	_, err = s.Update(ctx, created.ID, Fields{"bogus_column": "x"})
	require.NoError(t, err)
}

func TestMemoryCategoryStore_Translations(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryCategoryStore()

	parent, err := s.Create(ctx, Fields{"name_en": "Filling Machines"})
	require.NoError(t, err)

	missing, err := s.FindTranslation(ctx, parent.ID, domain.LangFrench)
	require.NoError(t, err)
	assert.Nil(t, missing)

	created, err := s.CreateTranslation(ctx, parent.ID, domain.LangFrench, Fields{
		"name":        "Machines de remplissage",
		"description": "Remplissage automatique",
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, created.CategoryID)
	assert.Equal(t, domain.LangFrench, created.Language)

	found, err := s.FindTranslation(ctx, parent.ID, domain.LangFrench)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Machines de remplissage", found.Name)

	updated, err := s.UpdateTranslation(ctx, found.ID, Fields{"name": "Machines de remplissage automatique"})
	require.NoError(t, err)
	assert.Equal(t, "Machines de remplissage automatique", updated.Name)
	assert.Equal(t, "Remplissage automatique", updated.Description)
}

func TestMemoryCategoryStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryCategoryStore()

	first, err := s.Create(ctx, Fields{"name_en": "Filling Machines"})
	require.NoError(t, err)
	_, err = s.Create(ctx, Fields{"name_en": "Capping Machines"})
	require.NoError(t, err)
	_, err = s.CreateTranslation(ctx, first.ID, domain.LangTamil, Fields{"name": "நிரப்பும் இயந்திரங்கள்"})
	require.NoError(t, err)
	_, err = s.CreateTranslation(ctx, first.ID, domain.LangFrench, Fields{"name": "Machines de remplissage"})
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Filling Machines", all[0].NameEN)
	require.Len(t, all[0].Translations, 2)
	assert.Equal(t, domain.LangFrench, all[0].Translations[0].Language, "translations sorted by language")
	assert.Empty(t, all[1].Translations)
}

func TestMemoryProductStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryProductStore()

	created, err := s.Create(ctx, Fields{
		"model_name_en": "FM-100",
		"stars":         "4.5",
		"reviews":       "1280",
	})
	require.NoError(t, err)
	assert.Equal(t, "4.5", created.Stars)

	found, err := s.FindByModelName(ctx, "FM-100")
	require.NoError(t, err)
	require.NotNil(t, found)

	updated, err := s.Update(ctx, created.ID, Fields{"status_en": "In Stock"})
	require.NoError(t, err)
	assert.Equal(t, "In Stock", updated.StatusEN)
	assert.Equal(t, "1280", updated.Reviews)

	translation, err := s.CreateTranslation(ctx, created.ID, domain.LangHindi, Fields{"name": "एफएम-100"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, translation.ProductID)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Translations, 1)
}
