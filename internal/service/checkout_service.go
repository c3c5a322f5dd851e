package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"go.opentelemetry.io/otel/attribute"
)

type PaymentGateway interface {
	CreateIntent(ctx context.Context, order *entity.Order) (entity.PaymentIntent, error)
}

type CheckoutRequest struct {
	Items           []entity.CartItemInput `json:"items"`
	Email           string                 `json:"email"`
	ShippingAddress entity.Address         `json:"shipping_address"`
	PaymentMethod   entity.PaymentMethod   `json:"payment_method"`
	UserID          string                 `json:"-"`
}

type CheckoutResult struct {
	OrderID string               `json:"order_id"`
	Total   float64              `json:"total"`
	Payment entity.PaymentIntent `json:"payment"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutService struct {
	orderRepo    repository.OrderRepository
	payments     PaymentGateway
	msgPublisher nats.MessagePublisher
	metrics      *metrics.MetricsManager
	log          logger.Logger
}

func NewCheckoutService(
	orderRepo repository.OrderRepository,
	payments PaymentGateway,
	msgPublisher nats.MessagePublisher,
	metricsManager *metrics.MetricsManager,
	log logger.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:    orderRepo,
		payments:     payments,
		msgPublisher: msgPublisher,
		metrics:      metricsManager,
		log:          log,
	}
}

// Checkout prices the cart, persists a pending order with a single insert and
// returns the payment intent. Nothing is written unless every item and the
// assembled order validate. There is no stock reservation.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	ctx, span := tracer.Start(ctx, "CheckoutService.Checkout")
	defer span.End()

	items, err := entity.CoerceCartItems(req.Items)
	if err != nil {
		s.rejected("invalid_cart", err)
		return nil, err
	}

	order, err := entity.NewOrder(req.UserID, req.Email, items, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		s.rejected("invalid_order", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("order.items", len(order.Items)),
		attribute.Float64("order.total", order.Total),
		attribute.String("order.payment_method", string(order.PaymentMethod)),
	)

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		span.RecordError(err)
		s.metrics.CheckoutFailed("store")
		s.log.Errorf("Failed to persist order: %v", err)
		return nil, storeFailure("persist order", err)
	}
	order.ID = orderID
	s.metrics.OrderPlaced(string(order.PaymentMethod))

	intent, err := s.payments.CreateIntent(ctx, order)
	if err != nil {
		span.RecordError(err)
		s.metrics.CheckoutFailed("payment")
		s.log.Errorf("Failed to create payment intent for order %s: %v", orderID, err)
		return nil, fmt.Errorf("create payment intent for order %s: %w", orderID, err)
	}

	if err := s.msgPublisher.Publish(ctx, SubjectOrderCreated, newOrderCreatedEvent(order)); err != nil {
		s.log.Warnf("Failed to publish order created event for order ID %s: %v", orderID, err)
	}

	s.log.Infof("Order %s placed: %d items, total %.2f, payment %s", orderID, len(order.Items), order.Total, intent.Status)
	return &CheckoutResult{
		OrderID: orderID,
		Total:   order.Total,
		Payment: intent,
	}, nil
}

func (s *checkoutService) rejected(reason string, err error) {
	s.metrics.CheckoutFailed(reason)
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		s.log.Infof("Checkout rejected (%s): %v", reason, verr)
		return
	}
	s.log.Warnf("Checkout rejected (%s): %v", reason, err)
}
