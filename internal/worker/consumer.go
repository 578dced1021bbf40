package worker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/internal/dto/request"
	"github.com/sameer-776/seminar-app/internal/usecase"
	"github.com/sameer-776/seminar-app/pkg/utils"
)

// Routing keys of the booking change events on the topic exchange.
const (
	RKBookingCreated = "booking.created"
	RKBookingUpdated = "booking.updated"
)

// Consumer is the event-bus binding of the trigger host contract. It
// acks only after the dispatcher returns; a failed dispatch is
// Nack+requeued, which gives the at-least-once redelivery the
// dispatcher is designed for.
type Consumer struct {
	cfg      utils.AMQPConfig
	dispatch usecase.DispatchService
	log      *zap.Logger

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg utils.AMQPConfig, dispatch usecase.DispatchService, log *zap.Logger) *Consumer {
	return &Consumer{
		cfg:      cfg,
		dispatch: dispatch,
		log:      log.With(zap.String("component", "amqp-consumer")),
	}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("amqp dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s failed: %w", c.cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	for _, key := range []string{RKBookingCreated, RKBookingUpdated} {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind queue key=%s failed: %w", key, err)
		}
	}

	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 8
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "booking-notifier", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	c.log.Info("Consuming booking events",
		zap.String("queue", c.cfg.Queue),
		zap.String("exchange", c.cfg.Exchange),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(ctx, d); err != nil {
				c.log.Error("Event handling failed, requeueing",
					zap.Error(err),
					zap.String("routing_key", d.RoutingKey),
				)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, d amqp.Delivery) error {
	switch d.RoutingKey {
	case RKBookingCreated:
		var ev request.BookingCreatedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return fmt.Errorf("decode booking.created payload: %w", err)
		}
		return c.dispatch.BookingCreated(ctx, ev.Booking.ToEntity())

	case RKBookingUpdated:
		var ev request.BookingUpdatedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return fmt.Errorf("decode booking.updated payload: %w", err)
		}
		return c.dispatch.BookingUpdated(ctx, ev.Before.ToEntity(), ev.After.ToEntity())

	default:
		// Unknown key: record it and ack so it does not loop forever.
		c.log.Warn("Skipping unknown routing key", zap.String("routing_key", d.RoutingKey))
		return nil
	}
}
