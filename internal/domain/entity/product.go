package entity

import (
	"errors"
	"strings"
	"time"
)

type Variant struct {
	Size  string `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
	Stock int    `json:"stock" validate:"gte=0"`
	SKU   string `json:"sku,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	Category    string    `json:"category" validate:"required"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants" validate:"dive"`
	Tags        []string  `json:"tags"`
	Rating      float64   `json:"rating" validate:"gte=0"`
	RatingCount int       `json:"rating_count" validate:"gte=0"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductInput is the admin create payload. Price has no default; IsActive
// defaults to true.
type ProductInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
	Tags        []string  `json:"tags"`
	IsActive    *bool     `json:"is_active"`
}

func NewProduct(in ProductInput) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Images:      nonNil(in.Images),
		Variants:    in.Variants,
		Tags:        nonNil(in.Tags),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Variants == nil {
		p.Variants = []Variant{}
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	verr := &ValidationError{}
	if in.Price == nil {
		verr.Add("price", "is required")
	} else {
		p.Price = *in.Price
	}
	if err := Validate(p); err != nil {
		var fieldErrs *ValidationError
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		verr.Fields = append(verr.Fields, fieldErrs.Fields...)
	}
	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// ProductPatch is a partial update: nil fields are left untouched.
type ProductPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Images      *[]string  `json:"images,omitempty"`
	Variants    *[]Variant `json:"variants,omitempty"`
	Tags        *[]string  `json:"tags,omitempty"`
	Rating      *float64   `json:"rating,omitempty"`
	RatingCount *int       `json:"rating_count,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}

func (p ProductPatch) IsEmpty() bool {
	return p == ProductPatch{}
}

// Apply returns a copy of product with the patch merged in and the result
// re-validated as a whole.
func (p ProductPatch) Apply(product Product, now time.Time) (*Product, error) {
	if p.IsEmpty() {
		return nil, NewValidationError("body", "must set at least one field")
	}

	if p.Title != nil {
		product.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Category != nil {
		product.Category = strings.TrimSpace(*p.Category)
	}
	if p.Images != nil {
		product.Images = nonNil(*p.Images)
	}
	if p.Variants != nil {
		product.Variants = *p.Variants
		if product.Variants == nil {
			product.Variants = []Variant{}
		}
	}
	if p.Tags != nil {
		product.Tags = nonNil(*p.Tags)
	}
	if p.Rating != nil {
		product.Rating = *p.Rating
	}
	if p.RatingCount != nil {
		product.RatingCount = *p.RatingCount
	}
	if p.IsActive != nil {
		product.IsActive = *p.IsActive
	}
	product.UpdatedAt = now

	if err := Validate(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
