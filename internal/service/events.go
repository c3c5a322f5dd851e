package service

import (
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

const (
	SubjectOrderCreated   = "order.created"
	SubjectProductCreated = "product.created"
	SubjectProductUpdated = "product.updated"
	SubjectProductDeleted = "product.deleted"
)

type OrderCreatedEvent struct {
	OrderID       string               `json:"order_id"`
	UserID        string               `json:"user_id,omitempty"`
	Email         string               `json:"email,omitempty"`
	Items         []entity.CartItem    `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Shipping      float64              `json:"shipping"`
	Total         float64              `json:"total"`
	PaymentMethod entity.PaymentMethod `json:"payment_method"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func newOrderCreatedEvent(o *entity.Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Email:         o.Email,
		Items:         o.Items,
		Subtotal:      o.Subtotal,
		Shipping:      o.Shipping,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		CreatedAt:     o.CreatedAt,
	}
}

type ProductEvent struct {
	ProductID  string    `json:"product_id"`
	Title      string    `json:"title,omitempty"`
	Price      float64   `json:"price,omitempty"`
	IsActive   bool      `json:"is_active"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newProductEvent(p *entity.Product) ProductEvent {
	return ProductEvent{
		ProductID:  p.ID,
		Title:      p.Title,
		Price:      p.Price,
		IsActive:   p.IsActive,
		OccurredAt: time.Now().UTC(),
	}
}
