package entity

import (
	"math"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodStripe PaymentMethod = "stripe"
	PaymentMethodCOD    PaymentMethod = "cod"
)

type PaymentStatus string

const (
	PaymentStatusPending        PaymentStatus = "pending"
	PaymentStatusRequiresAction PaymentStatus = "requires_action"
	PaymentStatusPaid           PaymentStatus = "paid"
	PaymentStatusFailed         PaymentStatus = "failed"
)

const DefaultCountry = "US"

type Address struct {
	FullName   string `json:"full_name" validate:"required"`
	Line1      string `json:"line1" validate:"required"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone,omitempty"`
}

func (a Address) withDefaults() Address {
	if strings.TrimSpace(a.Country) == "" {
		a.Country = DefaultCountry
	}
	return a
}

type CartItem struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"gte=1"`
	Price     float64           `json:"price" validate:"gte=0"`
	Title     string            `json:"title,omitempty"`
	Variant   map[string]string `json:"variant,omitempty"`
	Image     string            `json:"image,omitempty"`
}

type Order struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id,omitempty"`
	Items           []CartItem    `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64       `json:"subtotal" validate:"gte=0"`
	Shipping        float64       `json:"shipping" validate:"gte=0"`
	Total           float64       `json:"total" validate:"gte=0"`
	Status          OrderStatus   `json:"status" validate:"oneof=pending paid shipped delivered cancelled"`
	PaymentMethod   PaymentMethod `json:"payment_method" validate:"oneof=stripe cod"`
	PaymentStatus   PaymentStatus `json:"payment_status" validate:"oneof=pending requires_action paid failed"`
	TransactionID   string        `json:"transaction_id,omitempty"`
	ShippingAddress Address       `json:"shipping_address"`
	Email           string        `json:"email,omitempty" validate:"omitempty,email"`
	CreatedAt       time.Time     `json:"created_at"`
}

// InitialPaymentStatus is requires_action for card payments and pending for
// everything else.
func InitialPaymentStatus(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodStripe {
		return PaymentStatusRequiresAction
	}
	return PaymentStatusPending
}

// NewOrder prices items and assembles a pending order. The items are copied,
// the caller's slice is not retained.
func NewOrder(userID, email string, items []CartItem, address Address, method PaymentMethod) (*Order, error) {
	owned := make([]CartItem, len(items))
	copy(owned, items)

	subtotal := Subtotal(owned)
	shipping := FlatShipping

	o := &Order{
		UserID:          userID,
		Items:           owned,
		Subtotal:        subtotal,
		Shipping:        shipping,
		Total:           RoundCents(subtotal + shipping),
		Status:          OrderStatusPending,
		PaymentMethod:   method,
		PaymentStatus:   InitialPaymentStatus(method),
		ShippingAddress: address.withDefaults(),
		Email:           strings.TrimSpace(email),
		CreatedAt:       time.Now().UTC(),
	}
	if err := Validate(o); err != nil {
		return nil, err
	}
	if !isFinite(o.Subtotal) || !isFinite(o.Total) {
		return nil, NewValidationError("total", "must be a finite amount")
	}
	return o, nil
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// PaymentIntent is what the client needs to finish paying for an order.
type PaymentIntent struct {
	Method       PaymentMethod `json:"method"`
	Status       PaymentStatus `json:"status"`
	ClientSecret string        `json:"client_secret,omitempty"`
}
