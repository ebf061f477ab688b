package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inkboard/pkg/config"
	"inkboard/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PostEventsExchange  = "posts"
	PostEventsQueueName = "post_events"
	RoutingPostCreated  = "post.created"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		PostEventsExchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		PostEventsQueueName, // name
		true,                // durable
		false,               // delete when unused
		false,               // exclusive
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		PostEventsQueueName, // queue name
		"post.*",            // routing key
		PostEventsExchange,  // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Publish sends payload as a persistent JSON message.
func (c *Client) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	msg, err := newPublishing(payload, time.Now())
	if err != nil {
		return err
	}

	err = c.channel.PublishWithContext(ctx,
		PostEventsExchange, // exchange
		routingKey,         // routing key
		false,              // mandatory
		false,              // immediate
		msg,
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", PostEventsExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published to exchange=%s, routing_key=%s: %s", PostEventsExchange, routingKey, string(msg.Body))
	return nil
}

func newPublishing(payload interface{}, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
	}, nil
}
