package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// MessageHandler processes one message payload. Returned errors are logged.
type MessageHandler func(ctx context.Context, data []byte) error

type Subscriber struct {
	conn           *nats.Conn
	log            logger.Logger
	handlerTimeout time.Duration
	subs           []*nats.Subscription
}

func NewSubscriber(conn *nats.Conn, log logger.Logger, handlerTimeout time.Duration) *Subscriber {
	return &Subscriber{conn: conn, log: log.Named("nats-subscriber"), handlerTimeout: handlerTimeout}
}

// QueueSubscribe delivers each message on subject to one member of queue.
func (s *Subscriber) QueueSubscribe(subject, queue string, handler MessageHandler) error {
	sub, err := s.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		ctx := context.Background()
		if msg.Header != nil {
			ctx = otel.GetTextMapPropagator().Extract(ctx, HeaderCarrier(msg.Header))
		}
		ctx, span := tracer.Start(ctx, "nats.consume "+subject, trace.WithSpanKind(trace.SpanKindConsumer))
		defer span.End()

		ctx, cancel := context.WithTimeout(ctx, s.handlerTimeout)
		defer cancel()

		if err := handler(ctx, msg.Data); err != nil {
			span.RecordError(err)
			s.log.Errorf("handler for subject %s failed: %v", subject, err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}

	s.subs = append(s.subs, sub)
	s.log.Infof("subscribed to %s (queue %s)", subject, queue)
	return nil
}

// Drain stops delivery and lets in-flight handlers finish.
func (s *Subscriber) Drain() {
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			s.log.Warnf("drain subscription %s: %v", sub.Subject, err)
		}
	}
}
