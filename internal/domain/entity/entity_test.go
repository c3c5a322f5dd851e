package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	assert.True(t, errors.Is(err, ErrInvalid))

	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func priceOf(v float64) *float64 { return &v }

func validAddress() Address {
	return Address{
		FullName:   "Ada Lovelace",
		Line1:      "1 Analytical St",
		City:       "London",
		State:      "LDN",
		PostalCode: "N1",
	}
}

func TestNewUser(t *testing.T) {
	t.Run("defaults name from email and role to user", func(t *testing.T) {
		u, err := NewUser("", "  Jane.Doe@Example.com ", "$2a$hash", "")
		require.NoError(t, err)

		assert.Equal(t, "jane.doe@example.com", u.Email)
		assert.Equal(t, "jane.doe", u.Name)
		assert.Equal(t, RoleUser, u.Role)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsAdmin())
	})

	t.Run("rejects bad email and short name", func(t *testing.T) {
		_, err := NewUser("J", "not-an-email", "$2a$hash", RoleUser)
		msgs := fieldMessages(t, err)

		assert.Equal(t, "is not a well-formed email address", msgs["email"])
		assert.Equal(t, "must be at least 2 characters", msgs["name"])
	})

	t.Run("rejects long name and unknown role", func(t *testing.T) {
		_, err := NewUser(strings.Repeat("n", 81), "a@b.co", "$2a$hash", Role("root"))
		msgs := fieldMessages(t, err)

		assert.Equal(t, "must be at most 80 characters", msgs["name"])
		assert.Contains(t, msgs["role"], "must be one of")
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		p, err := NewProduct(ProductInput{Title: "Linen Shirt", Price: priceOf(49.5), Category: "shirts"})
		require.NoError(t, err)

		assert.True(t, p.IsActive)
		assert.Zero(t, p.Rating)
		assert.Zero(t, p.RatingCount)
		assert.NotNil(t, p.Images)
		assert.NotNil(t, p.Variants)
		assert.NotNil(t, p.Tags)
	})

	t.Run("rejects negative price and stock without clamping", func(t *testing.T) {
		_, err := NewProduct(ProductInput{
			Title:    "Linen Shirt",
			Price:    priceOf(-1),
			Category: "shirts",
			Variants: []Variant{{Size: "M", Stock: 2}, {Size: "L", Stock: -3}},
		})
		msgs := fieldMessages(t, err)

		assert.Equal(t, "must be ≥ 0", msgs["price"])
		assert.Equal(t, "must be ≥ 0", msgs["variants[1].stock"])
	})

	t.Run("requires title and category", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Title: "  ", Price: priceOf(1)})
		msgs := fieldMessages(t, err)

		assert.Equal(t, "is required", msgs["title"])
		assert.Equal(t, "is required", msgs["category"])
	})

	t.Run("requires price instead of defaulting to zero", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Title: "Tee", Category: "tops"})
		msgs := fieldMessages(t, err)

		assert.Equal(t, "is required", msgs["price"])
		assert.Len(t, msgs, 1)
	})

	t.Run("missing price reported with other failures", func(t *testing.T) {
		_, err := NewProduct(ProductInput{Category: "tops"})
		msgs := fieldMessages(t, err)

		assert.Equal(t, "is required", msgs["price"])
		assert.Equal(t, "is required", msgs["title"])
	})

	t.Run("explicit inactive", func(t *testing.T) {
		inactive := false
		p, err := NewProduct(ProductInput{Title: "Hat", Price: priceOf(0), Category: "hats", IsActive: &inactive})
		require.NoError(t, err)
		assert.False(t, p.IsActive)
	})
}

func TestProductPatch_Apply(t *testing.T) {
	base, err := NewProduct(ProductInput{Title: "Hat", Price: priceOf(10), Category: "hats"})
	require.NoError(t, err)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("merges only supplied fields", func(t *testing.T) {
		price := 12.5
		active := false
		updated, err := ProductPatch{Price: &price, IsActive: &active}.Apply(*base, now)
		require.NoError(t, err)

		assert.Equal(t, "Hat", updated.Title)
		assert.Equal(t, 12.5, updated.Price)
		assert.False(t, updated.IsActive)
		assert.Equal(t, now, updated.UpdatedAt)
		assert.Equal(t, 10.0, base.Price, "original must not change")
	})

	t.Run("revalidates the merged product", func(t *testing.T) {
		price := -0.01
		_, err := ProductPatch{Price: &price}.Apply(*base, now)
		msgs := fieldMessages(t, err)
		assert.Equal(t, "must be ≥ 0", msgs["price"])
	})

	t.Run("rejects blanking a required field", func(t *testing.T) {
		empty := ""
		_, err := ProductPatch{Category: &empty}.Apply(*base, now)
		msgs := fieldMessages(t, err)
		assert.Equal(t, "is required", msgs["category"])
	})

	t.Run("rejects negative variant stock", func(t *testing.T) {
		variants := []Variant{{Color: "red", Stock: -1}}
		_, err := ProductPatch{Variants: &variants}.Apply(*base, now)
		msgs := fieldMessages(t, err)
		assert.Equal(t, "must be ≥ 0", msgs["variants[0].stock"])
	})

	t.Run("empty patch", func(t *testing.T) {
		assert.True(t, ProductPatch{}.IsEmpty())
		_, err := ProductPatch{}.Apply(*base, now)
		msgs := fieldMessages(t, err)
		assert.Contains(t, msgs, "body")
	})
}

func TestNewOrder(t *testing.T) {
	items := []CartItem{
		{ProductID: "p1", Price: 19.99, Quantity: 2},
		{ProductID: "p2", Price: 5.00, Quantity: 3},
	}

	t.Run("stripe order", func(t *testing.T) {
		o, err := NewOrder("", "buyer@example.com", items, validAddress(), PaymentMethodStripe)
		require.NoError(t, err)

		assert.InDelta(t, 54.98, o.Subtotal, 1e-9)
		assert.Equal(t, 0.0, o.Shipping)
		assert.Equal(t, 54.98, o.Total)
		assert.Equal(t, OrderStatusPending, o.Status)
		assert.Equal(t, PaymentStatusRequiresAction, o.PaymentStatus)
		assert.Equal(t, DefaultCountry, o.ShippingAddress.Country)
		assert.Equal(t, "p1", o.Items[0].ProductID)
		assert.Equal(t, "p2", o.Items[1].ProductID)
	})

	t.Run("cod order", func(t *testing.T) {
		addr := validAddress()
		addr.Country = "DE"
		o, err := NewOrder("u1", "", items, addr, PaymentMethodCOD)
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
		assert.Equal(t, "DE", o.ShippingAddress.Country)
	})

	t.Run("owns its items", func(t *testing.T) {
		cart := []CartItem{{ProductID: "p1", Price: 1, Quantity: 1}}
		o, err := NewOrder("", "", cart, validAddress(), PaymentMethodCOD)
		require.NoError(t, err)

		cart[0].ProductID = "changed"
		assert.Equal(t, "p1", o.Items[0].ProductID)
	})

	t.Run("rejects unknown payment method and incomplete address", func(t *testing.T) {
		addr := validAddress()
		addr.City = ""
		_, err := NewOrder("", "bad-email", items, addr, PaymentMethod("paypal"))
		msgs := fieldMessages(t, err)

		assert.Contains(t, msgs["payment_method"], "must be one of")
		assert.Equal(t, "is required", msgs["shipping_address.city"])
		assert.Equal(t, "is not a well-formed email address", msgs["email"])
	})

	t.Run("rejects totals that overflow", func(t *testing.T) {
		huge := []CartItem{{ProductID: "p1", Price: 1e308, Quantity: 2}}
		o, err := NewOrder("", "", huge, validAddress(), PaymentMethodCOD)
		assert.Nil(t, o)
		msgs := fieldMessages(t, err)
		assert.Equal(t, "must be a finite amount", msgs["total"])
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := NewOrder("", "", nil, validAddress(), PaymentMethodCOD)
		msgs := fieldMessages(t, err)
		assert.Contains(t, msgs, "items")
	})
}

func TestInitialPaymentStatus(t *testing.T) {
	assert.Equal(t, PaymentStatusRequiresAction, InitialPaymentStatus(PaymentMethodStripe))
	assert.Equal(t, PaymentStatusPending, InitialPaymentStatus(PaymentMethodCOD))
}
