package domain

import "time"

// Category is the authoritative English-language row for a product
// category. name_en is the natural key used by upserts.
type Category struct {
	ID                    int64     `json:"id"`
	NameEN                string    `json:"name_en"`
	CategoryIcon          string    `json:"category_icon,omitempty"`
	CategoryImage         string    `json:"category_image,omitempty"`
	CategoryAltEN         string    `json:"category_Alt_en,omitempty"`
	CategoryLinkEN        string    `json:"categoryLink_en,omitempty"`
	SpecificationImage    string    `json:"specification_image,omitempty"`
	SpecificationImageAlt string    `json:"specification_image_alt,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	Translations []CategoryTranslation `json:"translations,omitempty"`
}

// CategoryTranslation is a per-language dependent row attached to exactly
// one category. (CategoryID, Language) is unique.
type CategoryTranslation struct {
	ID           int64        `json:"id"`
	CategoryID   int64        `json:"categoryId"`
	Language     LanguageCode `json:"language"`
	Name         string       `json:"name"`
	IconAlt      string       `json:"iconAlt,omitempty"`
	CategoryLink string       `json:"categoryLink,omitempty"`
	Description  string       `json:"description,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Product is the authoritative English-language row for a product.
// model_name_en is the natural key used by upserts.
type Product struct {
	ID                   int64     `json:"id"`
	ModelNameEN          string    `json:"model_name_en"`
	ProductName          string    `json:"product_name,omitempty"`
	ProductImage         string    `json:"productImage,omitempty"`
	ProductImageAlt      string    `json:"productImage_Alt,omitempty"`
	StatusEN             string    `json:"status_en,omitempty"`
	Stars                string    `json:"stars,omitempty"`
	Reviews              string    `json:"reviews,omitempty"`
	ProductDescriptionEN string    `json:"productDescription_en,omitempty"`
	ModelDescription     string    `json:"model_description,omitempty"`
	Introduction         string    `json:"introduction,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Translations []ProductTranslation `json:"translations,omitempty"`
}

// ProductTranslation is a per-language dependent row attached to exactly
// one product. (ProductID, Language) is unique.
type ProductTranslation struct {
	ID                 int64        `json:"id"`
	ProductID          int64        `json:"productId"`
	Language           LanguageCode `json:"language"`
	Name               string       `json:"name"`
	ImageAlt           string       `json:"imageAlt,omitempty"`
	Status             string       `json:"status,omitempty"`
	ProductDescription string       `json:"productDescription,omitempty"`
	ModelDescription   string       `json:"model_description,omitempty"`
	Introduction       string       `json:"introduction,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}
