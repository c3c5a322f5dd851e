package entity

import "strconv"

// FlatShipping is charged on every order.
const FlatShipping = 0.0

// Subtotal sums price*quantity in float64, left to right in cart order.
func Subtotal(items []CartItem) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// RoundCents rounds x to two decimal places. The exact binary value of x is
// rounded to the nearest cent and exact ties go to the even cent, so 0.125
// becomes 0.12 while 2.675 (stored as 2.67499...) becomes 2.67.
func RoundCents(x float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	if err != nil {
		return x
	}
	return rounded
}
