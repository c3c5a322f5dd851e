package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CartItemInput is a cart line as sent by the client. Price and quantity are
// kept raw so that numeric strings ("19.99", "2") are accepted.
type CartItemInput struct {
	ProductID string            `json:"product_id"`
	Quantity  json.RawMessage   `json:"quantity"`
	Price     json.RawMessage   `json:"price"`
	Title     string            `json:"title,omitempty"`
	Variant   map[string]string `json:"variant,omitempty"`
	Image     string            `json:"image,omitempty"`
}

// CoerceCartItems converts every input line or fails for the whole cart.
func CoerceCartItems(inputs []CartItemInput) ([]CartItem, error) {
	if len(inputs) == 0 {
		return nil, NewValidationError("items", "cart must contain at least one item")
	}

	verr := &ValidationError{}
	items := make([]CartItem, 0, len(inputs))
	for i, in := range inputs {
		prefix := fmt.Sprintf("items[%d].", i)

		productID := strings.TrimSpace(in.ProductID)
		if productID == "" {
			verr.Add(prefix+"product_id", "is required")
		}

		price, ok := parseLooseFloat(in.Price)
		switch {
		case !ok:
			verr.Add(prefix+"price", "must be a number")
		case price < 0:
			verr.Add(prefix+"price", "must be ≥ 0")
		}

		quantity, ok := parseLooseInt(in.Quantity)
		switch {
		case !ok:
			verr.Add(prefix+"quantity", "must be an integer")
		case quantity < 1:
			verr.Add(prefix+"quantity", "must be ≥ 1")
		}

		items = append(items, CartItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     price,
			Title:     in.Title,
			Variant:   in.Variant,
			Image:     in.Image,
		})
	}

	if err := verr.ErrOrNil(); err != nil {
		return nil, err
	}
	return items, nil
}

// looseText unwraps a JSON number or numeric string literal.
func looseText(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		s = strings.TrimSpace(s)
		return s, s != ""
	}
	if trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9') {
		return string(trimmed), true
	}
	return "", false
}

func parseLooseFloat(raw json.RawMessage) (float64, bool) {
	text, ok := looseText(raw)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseLooseInt accepts integers and integral floats such as 2.0; 2.5 is rejected.
func parseLooseInt(raw json.RawMessage) (int, bool) {
	text, ok := looseText(raw)
	if !ok {
		return 0, false
	}
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int(n), true
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
