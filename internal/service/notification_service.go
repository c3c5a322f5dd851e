package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
)

type NotificationService interface {
	HandleOrderCreated(ctx context.Context, data []byte) error
}

type notificationService struct {
	sender email.Sender
	log    logger.Logger
}

func NewNotificationService(sender email.Sender, log logger.Logger) NotificationService {
	return &notificationService{sender: sender, log: log}
}

// HandleOrderCreated mails a receipt to the address given at checkout. Orders
// placed without an email are skipped.
func (s *notificationService) HandleOrderCreated(ctx context.Context, data []byte) error {
	var event OrderCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode %s event: %w", SubjectOrderCreated, err)
	}
	if event.Email == "" {
		s.log.Debugf("Order %s has no email, skipping confirmation", event.OrderID)
		return nil
	}

	subject := fmt.Sprintf("Your order %s", shortOrderID(event.OrderID))
	text := buildReceiptText(event)
	body := "<pre>" + html.EscapeString(text) + "</pre>"

	if err := s.sender.Send(ctx, []string{event.Email}, subject, body, text); err != nil {
		s.log.Errorf("Failed to send confirmation for order %s: %v", event.OrderID, err)
		return err
	}
	s.log.Infof("Confirmation for order %s sent", event.OrderID)
	return nil
}

func buildReceiptText(e OrderCreatedEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order ID: %s\nPayment: %s (%s)\n\nItems:\n", e.OrderID, e.PaymentMethod, e.PaymentStatus)
	for _, item := range e.Items {
		title := item.Title
		if title == "" {
			title = item.ProductID
		}
		fmt.Fprintf(&b, "- %s (x%d) @ %.2f = %.2f\n", title, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\nShipping: %.2f\nTotal: %.2f\n", e.Subtotal, e.Shipping, e.Total)
	return b.String()
}

func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
