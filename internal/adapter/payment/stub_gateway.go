// Package payment produces payment intents without talking to a processor.
package payment

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

const (
	clientSecretPrefix = "cs_test_"
	clientSecretIDLen  = 8
)

type StubGateway struct{}

func NewStubGateway() *StubGateway {
	return &StubGateway{}
}

// CreateIntent derives a fake client secret from the first 8 characters of
// the order id for card payments. Cash on delivery has no secret.
func (g *StubGateway) CreateIntent(_ context.Context, order *entity.Order) (entity.PaymentIntent, error) {
	switch order.PaymentMethod {
	case entity.PaymentMethodStripe:
		if len(order.ID) < clientSecretIDLen {
			return entity.PaymentIntent{}, fmt.Errorf("order id %q too short for a client secret", order.ID)
		}
		return entity.PaymentIntent{
			Method:       entity.PaymentMethodStripe,
			Status:       entity.PaymentStatusRequiresAction,
			ClientSecret: clientSecretPrefix + order.ID[:clientSecretIDLen],
		}, nil
	case entity.PaymentMethodCOD:
		return entity.PaymentIntent{
			Method: entity.PaymentMethodCOD,
			Status: entity.PaymentStatusPending,
		}, nil
	default:
		return entity.PaymentIntent{}, fmt.Errorf("unsupported payment method %q", order.PaymentMethod)
	}
}
