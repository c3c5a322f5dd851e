package mongo

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/identifier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type variantDocument struct {
	Size  string `bson:"size,omitempty"`
	Color string `bson:"color,omitempty"`
	Stock int    `bson:"stock"`
	SKU   string `bson:"sku,omitempty"`
}

type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	Images      []string           `bson:"images"`
	Variants    []variantDocument  `bson:"variants"`
	Tags        []string           `bson:"tags"`
	Rating      float64            `bson:"rating"`
	RatingCount int                `bson:"rating_count"`
	IsActive    bool               `bson:"is_active"`
	CreatedAt   time.Time          `bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	AvatarURL    string             `bson:"avatar_url,omitempty"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at,omitempty"`
}

type addressDocument struct {
	FullName   string `bson:"full_name"`
	Line1      string `bson:"line1"`
	Line2      string `bson:"line2,omitempty"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone,omitempty"`
}

type cartItemDocument struct {
	ProductID string            `bson:"product_id"`
	Quantity  int               `bson:"quantity"`
	Price     float64           `bson:"price"`
	Title     string            `bson:"title,omitempty"`
	Variant   map[string]string `bson:"variant,omitempty"`
	Image     string            `bson:"image,omitempty"`
}

type orderDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id,omitempty"`
	Items           []cartItemDocument `bson:"items"`
	Subtotal        float64            `bson:"subtotal"`
	Shipping        float64            `bson:"shipping"`
	Total           float64            `bson:"total"`
	Status          string             `bson:"status"`
	PaymentMethod   string             `bson:"payment_method"`
	PaymentStatus   string             `bson:"payment_status"`
	TransactionID   string             `bson:"transaction_id,omitempty"`
	ShippingAddress addressDocument    `bson:"shipping_address"`
	Email           string             `bson:"email,omitempty"`
	CreatedAt       time.Time          `bson:"created_at,omitempty"`
}

func toProductDocument(p *entity.Product) *productDocument {
	variants := make([]variantDocument, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, variantDocument(v))
	}
	return &productDocument{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Images:      nonNilStrings(p.Images),
		Variants:    variants,
		Tags:        nonNilStrings(p.Tags),
		Rating:      p.Rating,
		RatingCount: p.RatingCount,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomainProduct(d *productDocument) *entity.Product {
	variants := make([]entity.Variant, 0, len(d.Variants))
	for _, v := range d.Variants {
		variants = append(variants, entity.Variant(v))
	}
	return &entity.Product{
		ID:          identifier.ToPublic(d.ID),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Images:      nonNilStrings(d.Images),
		Variants:    variants,
		Tags:        nonNilStrings(d.Tags),
		Rating:      d.Rating,
		RatingCount: d.RatingCount,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toUserDocument(u *entity.User) *userDocument {
	return &userDocument{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		AvatarURL:    u.AvatarURL,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainUser(d *userDocument) *entity.User {
	return &entity.User{
		ID:           identifier.ToPublic(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         entity.Role(d.Role),
		AvatarURL:    d.AvatarURL,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
	}
}

func toOrderDocument(o *entity.Order) *orderDocument {
	items := make([]cartItemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, cartItemDocument(it))
	}
	return &orderDocument{
		UserID:          o.UserID,
		Items:           items,
		Subtotal:        o.Subtotal,
		Shipping:        o.Shipping,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		TransactionID:   o.TransactionID,
		ShippingAddress: addressDocument(o.ShippingAddress),
		Email:           o.Email,
		CreatedAt:       o.CreatedAt,
	}
}

func toDomainOrder(d *orderDocument) *entity.Order {
	items := make([]entity.CartItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.CartItem(it))
	}
	return &entity.Order{
		ID:              identifier.ToPublic(d.ID),
		UserID:          d.UserID,
		Items:           items,
		Subtotal:        d.Subtotal,
		Shipping:        d.Shipping,
		Total:           d.Total,
		Status:          entity.OrderStatus(d.Status),
		PaymentMethod:   entity.PaymentMethod(d.PaymentMethod),
		PaymentStatus:   entity.PaymentStatus(d.PaymentStatus),
		TransactionID:   d.TransactionID,
		ShippingAddress: entity.Address(d.ShippingAddress),
		Email:           d.Email,
		CreatedAt:       d.CreatedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
