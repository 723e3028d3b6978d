// Package events mirrors live hub events onto a RabbitMQ topic exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"festa-pos/live"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

type RabbitMQ struct {
	Conn     *amqp.Connection
	Channel  *amqp.Channel
	Exchange string
}

func ConnectRabbitMQ(url, exchange string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Info().Str("exchange", exchange).Msg("connected to rabbitmq")
	return &RabbitMQ{Conn: conn, Channel: channel, Exchange: exchange}, nil
}

// RoutingKey is pos.<topic>.<type>, e.g. pos.orders.order.created.
func RoutingKey(e live.Event) string {
	return fmt.Sprintf("pos.%s.%s", e.Topic, e.Type)
}

func (r *RabbitMQ) PublishEvent(ctx context.Context, e live.Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return r.Channel.PublishWithContext(ctx,
		r.Exchange,    // exchange
		RoutingKey(e), // routing key
		false,         // mandatory
		false,         // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    e.At,
		})
}

func (r *RabbitMQ) Close() {
	if r.Channel != nil {
		r.Channel.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
