package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kanha-9770/bulkimport/internal/domain"
)

// Column whitelists: target field name -> database column. Anything not
// listed here never reaches SQL, whatever the operator mapped.
var (
	categoryColumns = map[string]string{
		"name_en":                 "name_en",
		"category_icon":           "category_icon",
		"category_image":          "category_image",
		"category_Alt_en":         "category_alt_en",
		"categoryLink_en":         "category_link_en",
		"specification_image":     "specification_image",
		"specification_image_alt": "specification_image_alt",
	}
	categoryTranslationColumns = map[string]string{
		"name":         "name",
		"iconAlt":      "icon_alt",
		"categoryLink": "category_link",
		"description":  "description",
	}
	productColumns = map[string]string{
		"model_name_en":         "model_name_en",
		"product_name":          "product_name",
		"productImage":          "product_image",
		"productImage_Alt":      "product_image_alt",
		"status_en":             "status_en",
		"stars":                 "stars",
		"reviews":               "reviews",
		"productDescription_en": "product_description_en",
		"model_description":     "model_description",
		"introduction":          "introduction",
	}
	productTranslationColumns = map[string]string{
		"name":               "name",
		"imageAlt":           "image_alt",
		"status":             "status",
		"productDescription": "product_description",
		"model_description":  "model_description",
		"introduction":       "introduction",
	}
)

// insertClause renders whitelisted fields into column and placeholder
// lists for an INSERT, starting placeholders at $1.
func insertClause(fields Fields, whitelist map[string]string) (columns string, placeholders string, args []any) {
	var cols, phs []string
	for field, value := range fields {
		column, ok := whitelist[field]
		if !ok {
			continue
		}
		args = append(args, value)
		cols = append(cols, column)
		phs = append(phs, fmt.Sprintf("$%d", len(args)))
	}
	return strings.Join(cols, ", "), strings.Join(phs, ", "), args
}

// setClause renders whitelisted fields into an UPDATE SET list with
// placeholders starting after the given offset.
func setClause(fields Fields, whitelist map[string]string, offset int) (string, []any) {
	var sets []string
	var args []any
	for field, value := range fields {
		column, ok := whitelist[field]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, offset+len(args)))
	}
	return strings.Join(sets, ", "), args
}

// PostgresCategoryStore implements CategoryStore using PostgreSQL.
type PostgresCategoryStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryStore creates a new PostgresCategoryStore.
func NewPostgresCategoryStore(pool *pgxpool.Pool) *PostgresCategoryStore {
	return &PostgresCategoryStore{pool: pool}
}

const categorySelect = `
	SELECT id, name_en, category_icon, category_image, category_alt_en,
		category_link_en, specification_image, specification_image_alt,
		created_at, updated_at
	FROM categories`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.NameEN, &c.CategoryIcon, &c.CategoryImage, &c.CategoryAltEN,
		&c.CategoryLinkEN, &c.SpecificationImage, &c.SpecificationImageAlt,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}

func (s *PostgresCategoryStore) FindByName(ctx context.Context, nameEN string) (*domain.Category, error) {
	return scanCategory(s.pool.QueryRow(ctx, categorySelect+` WHERE name_en = $1`, nameEN))
}

func (s *PostgresCategoryStore) Create(ctx context.Context, fields Fields) (*domain.Category, error) {
	columns, placeholders, args := insertClause(fields, categoryColumns)
	if columns == "" {
		return nil, fmt.Errorf("create category: no writable fields")
	}
	query := fmt.Sprintf(`
		INSERT INTO categories (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())
		RETURNING id, name_en, category_icon, category_image, category_alt_en,
			category_link_en, specification_image, specification_image_alt,
			created_at, updated_at`, columns, placeholders)
	c, err := scanCategory(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (s *PostgresCategoryStore) Update(ctx context.Context, id int64, fields Fields) (*domain.Category, error) {
	sets, args := setClause(fields, categoryColumns, 1)
	if sets == "" {
		return s.FindByID(ctx, id)
	}
	query := fmt.Sprintf(`
		UPDATE categories SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name_en, category_icon, category_image, category_alt_en,
			category_link_en, specification_image, specification_image_alt,
			created_at, updated_at`, sets)
	c, err := scanCategory(s.pool.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// FindByID retrieves a category by primary key.
func (s *PostgresCategoryStore) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	return scanCategory(s.pool.QueryRow(ctx, categorySelect+` WHERE id = $1`, id))
}

const categoryTranslationSelect = `
	SELECT id, category_id, language, name, icon_alt, category_link, description,
		created_at, updated_at
	FROM category_translations`

func scanCategoryTranslation(row pgx.Row) (*domain.CategoryTranslation, error) {
	var t domain.CategoryTranslation
	err := row.Scan(&t.ID, &t.CategoryID, &t.Language, &t.Name, &t.IconAlt,
		&t.CategoryLink, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan category translation: %w", err)
	}
	return &t, nil
}

func (s *PostgresCategoryStore) FindTranslation(ctx context.Context, categoryID int64, lang domain.LanguageCode) (*domain.CategoryTranslation, error) {
	return scanCategoryTranslation(s.pool.QueryRow(ctx,
		categoryTranslationSelect+` WHERE category_id = $1 AND language = $2`, categoryID, lang))
}

func (s *PostgresCategoryStore) CreateTranslation(ctx context.Context, categoryID int64, lang domain.LanguageCode, fields Fields) (*domain.CategoryTranslation, error) {
	columns, placeholders, args := insertClause(fields, categoryTranslationColumns)
	if columns != "" {
		columns = ", " + columns
		placeholders = ", " + placeholders
	}
	query := fmt.Sprintf(`
		INSERT INTO category_translations (category_id, language%s, created_at, updated_at)
		VALUES ($%d, $%d%s, NOW(), NOW())
		RETURNING id, category_id, language, name, icon_alt, category_link, description,
			created_at, updated_at`, columns, len(args)+1, len(args)+2, placeholders)
	t, err := scanCategoryTranslation(s.pool.QueryRow(ctx, query, append(args, categoryID, lang)...))
	if err != nil {
		return nil, fmt.Errorf("insert category translation: %w", err)
	}
	return t, nil
}

func (s *PostgresCategoryStore) UpdateTranslation(ctx context.Context, id int64, fields Fields) (*domain.CategoryTranslation, error) {
	sets, args := setClause(fields, categoryTranslationColumns, 1)
	if sets == "" {
		return scanCategoryTranslation(s.pool.QueryRow(ctx, categoryTranslationSelect+` WHERE id = $1`, id))
	}
	query := fmt.Sprintf(`
		UPDATE category_translations SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING id, category_id, language, name, icon_alt, category_link, description,
			created_at, updated_at`, sets)
	t, err := scanCategoryTranslation(s.pool.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return nil, fmt.Errorf("update category translation: %w", err)
	}
	return t, nil
}

// List returns all categories with their translations attached, ordered
// by id.
func (s *PostgresCategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, categorySelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	index := make(map[int64]int)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.NameEN, &c.CategoryIcon, &c.CategoryImage, &c.CategoryAltEN,
			&c.CategoryLinkEN, &c.SpecificationImage, &c.SpecificationImageAlt,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	trRows, err := s.pool.Query(ctx, categoryTranslationSelect+` ORDER BY category_id, language`)
	if err != nil {
		return nil, fmt.Errorf("query category translations: %w", err)
	}
	defer trRows.Close()

	for trRows.Next() {
		var t domain.CategoryTranslation
		if err := trRows.Scan(&t.ID, &t.CategoryID, &t.Language, &t.Name, &t.IconAlt,
			&t.CategoryLink, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category translation: %w", err)
		}
		if i, ok := index[t.CategoryID]; ok {
			categories[i].Translations = append(categories[i].Translations, t)
		}
	}
	return categories, trRows.Err()
}

// PostgresProductStore implements ProductStore using PostgreSQL.
type PostgresProductStore struct {
	pool *pgxpool.Pool
}

// NewPostgresProductStore creates a new PostgresProductStore.
func NewPostgresProductStore(pool *pgxpool.Pool) *PostgresProductStore {
	return &PostgresProductStore{pool: pool}
}

const productSelect = `
	SELECT id, model_name_en, product_name, product_image, product_image_alt,
		status_en, stars, reviews, product_description_en, model_description,
		introduction, created_at, updated_at
	FROM products`

const productReturning = `
	RETURNING id, model_name_en, product_name, product_image, product_image_alt,
		status_en, stars, reviews, product_description_en, model_description,
		introduction, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.ModelNameEN, &p.ProductName, &p.ProductImage, &p.ProductImageAlt,
		&p.StatusEN, &p.Stars, &p.Reviews, &p.ProductDescriptionEN, &p.ModelDescription,
		&p.Introduction, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (s *PostgresProductStore) FindByModelName(ctx context.Context, modelNameEN string) (*domain.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx, productSelect+` WHERE model_name_en = $1`, modelNameEN))
}

func (s *PostgresProductStore) Create(ctx context.Context, fields Fields) (*domain.Product, error) {
	columns, placeholders, args := insertClause(fields, productColumns)
	if columns == "" {
		return nil, fmt.Errorf("create product: no writable fields")
	}
	query := fmt.Sprintf(`
		INSERT INTO products (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())%s`, columns, placeholders, productReturning)
	p, err := scanProduct(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *PostgresProductStore) Update(ctx context.Context, id int64, fields Fields) (*domain.Product, error) {
	sets, args := setClause(fields, productColumns, 1)
	if sets == "" {
		return s.FindByID(ctx, id)
	}
	query := fmt.Sprintf(`
		UPDATE products SET %s, updated_at = NOW()
		WHERE id = $1%s`, sets, productReturning)
	p, err := scanProduct(s.pool.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// FindByID retrieves a product by primary key.
func (s *PostgresProductStore) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx, productSelect+` WHERE id = $1`, id))
}

const productTranslationSelect = `
	SELECT id, product_id, language, name, image_alt, status, product_description,
		model_description, introduction, created_at, updated_at
	FROM product_translations`

const productTranslationReturning = `
	RETURNING id, product_id, language, name, image_alt, status, product_description,
		model_description, introduction, created_at, updated_at`

func scanProductTranslation(row pgx.Row) (*domain.ProductTranslation, error) {
	var t domain.ProductTranslation
	err := row.Scan(&t.ID, &t.ProductID, &t.Language, &t.Name, &t.ImageAlt, &t.Status,
		&t.ProductDescription, &t.ModelDescription, &t.Introduction, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product translation: %w", err)
	}
	return &t, nil
}

func (s *PostgresProductStore) FindTranslation(ctx context.Context, productID int64, lang domain.LanguageCode) (*domain.ProductTranslation, error) {
	return scanProductTranslation(s.pool.QueryRow(ctx,
		productTranslationSelect+` WHERE product_id = $1 AND language = $2`, productID, lang))
}

func (s *PostgresProductStore) CreateTranslation(ctx context.Context, productID int64, lang domain.LanguageCode, fields Fields) (*domain.ProductTranslation, error) {
	columns, placeholders, args := insertClause(fields, productTranslationColumns)
	if columns != "" {
		columns = ", " + columns
		placeholders = ", " + placeholders
	}
	query := fmt.Sprintf(`
		INSERT INTO product_translations (product_id, language%s, created_at, updated_at)
		VALUES ($%d, $%d%s, NOW(), NOW())%s`,
		columns, len(args)+1, len(args)+2, placeholders, productTranslationReturning)
	t, err := scanProductTranslation(s.pool.QueryRow(ctx, query, append(args, productID, lang)...))
	if err != nil {
		return nil, fmt.Errorf("insert product translation: %w", err)
	}
	return t, nil
}

func (s *PostgresProductStore) UpdateTranslation(ctx context.Context, id int64, fields Fields) (*domain.ProductTranslation, error) {
	sets, args := setClause(fields, productTranslationColumns, 1)
	if sets == "" {
		return scanProductTranslation(s.pool.QueryRow(ctx, productTranslationSelect+` WHERE id = $1`, id))
	}
	query := fmt.Sprintf(`
		UPDATE product_translations SET %s, updated_at = NOW()
		WHERE id = $1%s`, sets, productTranslationReturning)
	t, err := scanProductTranslation(s.pool.QueryRow(ctx, query, append([]any{id}, args...)...))
	if err != nil {
		return nil, fmt.Errorf("update product translation: %w", err)
	}
	return t, nil
}

// List returns all products with their translations attached, ordered by id.
func (s *PostgresProductStore) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.pool.Query(ctx, productSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	index := make(map[int64]int)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.ModelNameEN, &p.ProductName, &p.ProductImage, &p.ProductImageAlt,
			&p.StatusEN, &p.Stars, &p.Reviews, &p.ProductDescriptionEN, &p.ModelDescription,
			&p.Introduction, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	trRows, err := s.pool.Query(ctx, productTranslationSelect+` ORDER BY product_id, language`)
	if err != nil {
		return nil, fmt.Errorf("query product translations: %w", err)
	}
	defer trRows.Close()

	for trRows.Next() {
		var t domain.ProductTranslation
		if err := trRows.Scan(&t.ID, &t.ProductID, &t.Language, &t.Name, &t.ImageAlt, &t.Status,
			&t.ProductDescription, &t.ModelDescription, &t.Introduction, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product translation: %w", err)
		}
		if i, ok := index[t.ProductID]; ok {
			products[i].Translations = append(products[i].Translations, t)
		}
	}
	return products, trRows.Err()
}
