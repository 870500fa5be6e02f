package rabbit

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/zlog"
)

// Publisher is the slice of the client the request path depends on.
type Publisher interface {
	Publish(message []byte, delaySeconds int) error
}

// Client talks to a delayed-message exchange: ticket emails go out with zero
// delay, booking-expiry jobs are held back for the payment window. Requires
// the rabbitmq_delayed_message_exchange plugin on the broker.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
}

func NewRabbit(url, exchange, queue string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{conn: conn, channel: ch, exchange: exchange, queue: queue}
	if err := c.declareTopology(); err != nil {
		c.Close()
		return nil, err
	}

	zlog.Logger.Info().
		Str("exchange", exchange).
		Str("queue", queue).
		Msg("rabbitmq ready")
	return c, nil
}

func (c *Client) declareTopology() error {
	err := c.channel.ExchangeDeclare(
		c.exchange,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", c.exchange, err)
	}

	if _, err := c.channel.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", c.queue, err)
	}
	if err := c.channel.QueueBind(c.queue, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", c.queue, err)
	}
	return nil
}

func (c *Client) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish sends a job to the exchange. A positive delay holds the message in
// the broker for that many seconds before routing.
func (c *Client) Publish(message []byte, delaySeconds int) error {
	headers := amqp.Table{}
	if delaySeconds > 0 {
		headers["x-delay"] = int32(delaySeconds * 1000)
	}

	err := c.channel.Publish(c.exchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        message,
		Timestamp:   time.Now(),
		Headers:     headers,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", c.exchange, err)
	}

	zlog.Logger.Debug().
		Str("exchange", c.exchange).
		Int("delay_seconds", delaySeconds).
		Msg("job published")
	return nil
}

// Consume delivers queue messages to handler on a background goroutine.
// A handler error nacks the message back onto the queue.
func (c *Client) Consume(handler func([]byte) error) error {
	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	go func() {
		for d := range msgs {
			if err := handler(d.Body); err != nil {
				zlog.Logger.Warn().Err(err).Msg("job failed, requeueing")
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}()

	zlog.Logger.Info().Str("queue", c.queue).Msg("consumer started")
	return nil
}
