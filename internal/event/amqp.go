package event

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// amqpPublisher publishes order events to a durable direct exchange.
type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger
}

// NewAMQPPublisher connects to the broker and declares the order exchange.
func NewAMQPPublisher(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	logger = logger.With().Str("component", "order-events").Logger()

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info().Str("exchange", exchange).Msg("order event publisher connected")

	return &amqpPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// OrderCreated announces a freshly created (unpaid) order.
func (p *amqpPublisher) OrderCreated(ctx context.Context, evt OrderEvent) error {
	return p.publish(ctx, RouteOrderCreated, evt)
}

// OrderPaid announces that an order has been paid.
func (p *amqpPublisher) OrderPaid(ctx context.Context, evt OrderEvent) error {
	return p.publish(ctx, RouteOrderPaid, evt)
}

func (p *amqpPublisher) publish(ctx context.Context, route string, evt OrderEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode order event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		route,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("route", route).
			Str("order_id", evt.OrderID.String()).
			Msg("failed to publish order event")
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	p.logger.Debug().
		Str("route", route).
		Str("order_id", evt.OrderID.String()).
		Msg("order event published")

	return nil
}

// Close releases the channel and connection.
func (p *amqpPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return fmt.Errorf("failed to close AMQP channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("failed to close AMQP connection: %w", err)
	}
	return nil
}
