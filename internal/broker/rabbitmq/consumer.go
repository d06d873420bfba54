package rabbitmq

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"tipjar/internal/lib/logger/sl"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one message body. Returning false requeues the delivery.
type Handler func(body []byte, redelivered bool) bool

const (
	prefetchCount = 1
	minRetryDelay = 500 * time.Millisecond
	maxRetryDelay = 30 * time.Second
)

type Consumer struct {
	log  *slog.Logger
	conn *amqp.Connection
	ch   *amqp.Channel
}

// retryBackoff delays the requeue of a failed delivery. The delay doubles with every
// consecutive failure and drops back to the minimum after a success.
type retryBackoff struct {
	min, max time.Duration
	current  time.Duration
	sleep    func(time.Duration)
}

func newRetryBackoff() *retryBackoff {
	return &retryBackoff{min: minRetryDelay, max: maxRetryDelay, sleep: time.Sleep}
}

func (b *retryBackoff) next() time.Duration {
	if b.current == 0 {
		b.current = b.min
	} else {
		b.current *= 2
	}
	if b.current > b.max {
		b.current = b.max
	}
	return b.current
}

func (b *retryBackoff) reset() {
	b.current = 0
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", fmt.Errorf("invalid AMQP scheme: %s", parsed.Scheme)
	}
	return clean, nil
}

func NewConsumer(log *slog.Logger, amqpURL string) (*Consumer, error) {
	const op = "broker.rabbitmq.NewConsumer"

	cleanURL, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Consumer{log: log, conn: conn, ch: ch}, nil
}

// ConsumeWithBindings declares a durable topic exchange and queue, binds every routing key and
// starts delivering in a background goroutine.
func (c *Consumer) ConsumeWithBindings(exchange, queueName string, bindings map[string]Handler) error {
	const op = "broker.rabbitmq.Consumer.ConsumeWithBindings"

	if len(bindings) == 0 {
		return fmt.Errorf("%s: %w", op, errors.New("no bindings provided"))
	}

	if err := c.ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	q, err := c.ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	handlers := make(map[string]Handler)
	for routingKey, handler := range bindings {
		if handler == nil {
			continue
		}
		handlers[routingKey] = handler
		if err := c.ch.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	// по одному сообщению, иначе пауза перед requeue не тормозит остальные
	if err := c.ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	msgs, err := c.ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.log.Info("consuming confirmations",
		slog.String("exchange", exchange),
		slog.String("queue", q.Name),
	)

	go func() {
		backoff := newRetryBackoff()
		for d := range msgs {
			dispatch(c.log, handlers, d, backoff)
		}
		c.log.Info("delivery channel closed", slog.String("queue", q.Name))
	}()

	return nil
}

func dispatch(log *slog.Logger, handlers map[string]Handler, d amqp.Delivery, backoff *retryBackoff) {
	log = log.With(slog.String("routing_key", d.RoutingKey))

	handler, ok := handlers[d.RoutingKey]
	if !ok {
		log.Warn("no handler for routing key, dropping")
		if err := d.Ack(false); err != nil {
			log.Error("failed to ack", sl.Err(err))
		}
		return
	}

	if handler(d.Body, d.Redelivered) {
		backoff.reset()
		if err := d.Ack(false); err != nil {
			log.Error("failed to ack", sl.Err(err))
		}
		return
	}

	delay := backoff.next()
	log.Warn("handler failed, requeueing after delay", slog.Duration("delay", delay))
	backoff.sleep(delay)
	if err := d.Nack(false, true); err != nil {
		log.Error("failed to nack", sl.Err(err))
	}
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
