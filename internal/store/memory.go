package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// MemoryCategoryStore is an in-memory CategoryStore. It exists so the
// processor can be exercised without a database; all methods are safe for
// concurrent use.
type MemoryCategoryStore struct {
	mu           sync.Mutex
	nextID       int64
	nextTransID  int64
	categories   map[int64]*domain.Category
	translations map[int64]*domain.CategoryTranslation
}

// NewMemoryCategoryStore creates an empty in-memory category store.
func NewMemoryCategoryStore() *MemoryCategoryStore {
	return &MemoryCategoryStore{
		nextID:       1,
		nextTransID:  1,
		categories:   make(map[int64]*domain.Category),
		translations: make(map[int64]*domain.CategoryTranslation),
	}
}

func (s *MemoryCategoryStore) FindByName(_ context.Context, nameEN string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.NameEN == nameEN {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryCategoryStore) Create(_ context.Context, fields Fields) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	c := &domain.Category{ID: s.nextID, CreatedAt: now, UpdatedAt: now}
	s.nextID++
	applyCategoryFields(c, fields)
	s.categories[c.ID] = c
	copied := *c
	return &copied, nil
}

func (s *MemoryCategoryStore) Update(_ context.Context, id int64, fields Fields) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	applyCategoryFields(c, fields)
	c.UpdatedAt = time.Now()
	copied := *c
	return &copied, nil
}

func (s *MemoryCategoryStore) FindTranslation(_ context.Context, categoryID int64, lang domain.LanguageCode) (*domain.CategoryTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.translations {
		if t.CategoryID == categoryID && t.Language == lang {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryCategoryStore) CreateTranslation(_ context.Context, categoryID int64, lang domain.LanguageCode, fields Fields) (*domain.CategoryTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t := &domain.CategoryTranslation{
		ID:         s.nextTransID,
		CategoryID: categoryID,
		Language:   lang,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.nextTransID++
	applyCategoryTranslationFields(t, fields)
	s.translations[t.ID] = t
	copied := *t
	return &copied, nil
}

func (s *MemoryCategoryStore) UpdateTranslation(_ context.Context, id int64, fields Fields) (*domain.CategoryTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.translations[id]
	if !ok {
		return nil, nil
	}
	applyCategoryTranslationFields(t, fields)
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (s *MemoryCategoryStore) List(_ context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		copied := *c
		for _, t := range s.translations {
			if t.CategoryID == c.ID {
				copied.Translations = append(copied.Translations, *t)
			}
		}
		sort.Slice(copied.Translations, func(i, j int) bool {
			return copied.Translations[i].Language < copied.Translations[j].Language
		})
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func applyCategoryFields(c *domain.Category, fields Fields) {
	for column, value := range fields {
		switch column {
		case "name_en":
			c.NameEN = value
		case "category_icon":
			c.CategoryIcon = value
		case "category_image":
			c.CategoryImage = value
		case "category_Alt_en":
			c.CategoryAltEN = value
		case "categoryLink_en":
			c.CategoryLinkEN = value
		case "specification_image":
			c.SpecificationImage = value
		case "specification_image_alt":
			c.SpecificationImageAlt = value
		}
	}
}

func applyCategoryTranslationFields(t *domain.CategoryTranslation, fields Fields) {
	for column, value := range fields {
		switch column {
		case "name":
			t.Name = value
		case "iconAlt":
			t.IconAlt = value
		case "categoryLink":
			t.CategoryLink = value
		case "description":
			t.Description = value
		}
	}
}

// MemoryProductStore is an in-memory ProductStore, the product-side twin
// of MemoryCategoryStore.
type MemoryProductStore struct {
	mu           sync.Mutex
	nextID       int64
	nextTransID  int64
	products     map[int64]*domain.Product
	translations map[int64]*domain.ProductTranslation
}

// NewMemoryProductStore creates an empty in-memory product store.
func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{
		nextID:       1,
		nextTransID:  1,
		products:     make(map[int64]*domain.Product),
		translations: make(map[int64]*domain.ProductTranslation),
	}
}

func (s *MemoryProductStore) FindByModelName(_ context.Context, modelNameEN string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ModelNameEN == modelNameEN {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryProductStore) Create(_ context.Context, fields Fields) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &domain.Product{ID: s.nextID, CreatedAt: now, UpdatedAt: now}
	s.nextID++
	applyProductFields(p, fields)
	s.products[p.ID] = p
	copied := *p
	return &copied, nil
}

func (s *MemoryProductStore) Update(_ context.Context, id int64, fields Fields) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	applyProductFields(p, fields)
	p.UpdatedAt = time.Now()
	copied := *p
	return &copied, nil
}

func (s *MemoryProductStore) FindTranslation(_ context.Context, productID int64, lang domain.LanguageCode) (*domain.ProductTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.translations {
		if t.ProductID == productID && t.Language == lang {
			copied := *t
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *MemoryProductStore) CreateTranslation(_ context.Context, productID int64, lang domain.LanguageCode, fields Fields) (*domain.ProductTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	t := &domain.ProductTranslation{
		ID:        s.nextTransID,
		ProductID: productID,
		Language:  lang,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextTransID++
	applyProductTranslationFields(t, fields)
	s.translations[t.ID] = t
	copied := *t
	return &copied, nil
}

func (s *MemoryProductStore) UpdateTranslation(_ context.Context, id int64, fields Fields) (*domain.ProductTranslation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.translations[id]
	if !ok {
		return nil, nil
	}
	applyProductTranslationFields(t, fields)
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (s *MemoryProductStore) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		copied := *p
		for _, t := range s.translations {
			if t.ProductID == p.ID {
				copied.Translations = append(copied.Translations, *t)
			}
		}
		sort.Slice(copied.Translations, func(i, j int) bool {
			return copied.Translations[i].Language < copied.Translations[j].Language
		})
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func applyProductFields(p *domain.Product, fields Fields) {
	for column, value := range fields {
		switch column {
		case "model_name_en":
			p.ModelNameEN = value
		case "product_name":
			p.ProductName = value
		case "productImage":
			p.ProductImage = value
		case "productImage_Alt":
			p.ProductImageAlt = value
		case "status_en":
			p.StatusEN = value
		case "stars":
			p.Stars = value
		case "reviews":
			p.Reviews = value
		case "productDescription_en":
			p.ProductDescriptionEN = value
		case "model_description":
			p.ModelDescription = value
		case "introduction":
			p.Introduction = value
		}
	}
}

func applyProductTranslationFields(t *domain.ProductTranslation, fields Fields) {
	for column, value := range fields {
		switch column {
		case "name":
			t.Name = value
		case "imageAlt":
			t.ImageAlt = value
		case "status":
			t.Status = value
		case "productDescription":
			t.ProductDescription = value
		case "model_description":
			t.ModelDescription = value
		case "introduction":
			t.Introduction = value
		}
	}
}
