// Package amqp is the cross-process signal bus. The app daemon publishes
// widget refresh requests and fired alerts; the widget worker consumes
// refresh requests; the app daemon consumes alert actions taken on the
// notification surface.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// Queue names double as routing keys on the direct exchange.
const (
	QueueWidgetRefresh = "widget_refresh"
	QueueAlerts        = "alerts"
	QueueAlertActions  = "alert_actions"
)

const publishTimeout = 5 * time.Second

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

func NewClient(url, exchangeName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{QueueWidgetRefresh, QueueAlerts, QueueAlertActions} {
		_, err = c.channel.QueueDeclare(
			queue, // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		// Routing key matches the queue name on a direct exchange.
		if err := c.channel.QueueBind(queue, queue, c.exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// PublishWidgetRefresh publishes a widget refresh request.
func (c *Client) PublishWidgetRefresh(ctx context.Context, reason string, attempt int) error {
	msg := NewWidgetRefreshMessage(reason, attempt)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, QueueWidgetRefresh, body); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published widget refresh",
		"reason", reason,
		"attempt", attempt,
		"exchange", c.exchangeName)
	return nil
}

// PublishAlert publishes a fired alert for the delivery surface.
func (c *Client) PublishAlert(ctx context.Context, msg *AlertMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, QueueAlerts, body); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published alert",
		"id", msg.ID,
		"category", msg.Category,
		"exchange", c.exchangeName)
	return nil
}

// PublishAction publishes a user action taken on a delivered alert.
func (c *Client) PublishAction(ctx context.Context, msg *ActionMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, QueueAlertActions, body); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published alert action",
		"action", msg.Action,
		"reminder_id", msg.ReminderID,
		"exchange", c.exchangeName)
	return nil
}

// ConsumeWidgetRefresh consumes widget refresh requests until ctx ends.
func (c *Client) ConsumeWidgetRefresh(ctx context.Context, handler func(*WidgetRefreshMessage) error) error {
	return consume(ctx, c.channel, QueueWidgetRefresh, WidgetRefreshMessageFromJSON, handler)
}

// ConsumeAlerts consumes fired alerts until ctx ends.
func (c *Client) ConsumeAlerts(ctx context.Context, handler func(*AlertMessage) error) error {
	return consume(ctx, c.channel, QueueAlerts, AlertMessageFromJSON, handler)
}

// ConsumeActions consumes alert actions until ctx ends.
func (c *Client) ConsumeActions(ctx context.Context, handler func(*ActionMessage) error) error {
	return consume(ctx, c.channel, QueueAlertActions, ActionMessageFromJSON, handler)
}

func consume[M any](ctx context.Context, channel *amqp091.Channel, queue string, decode func([]byte) (*M, error), handler func(*M) error) error {
	msgs, err := channel.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack (we want manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming %s: %w", queue, err)
	}

	slog.InfoContext(ctx, "Started consuming", "queue", queue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "queue", queue, "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			msg, err := decode(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal message", "queue", queue, "error", err)
				delivery.Nack(false, false) // reject and don't requeue
				continue
			}

			if err := handler(msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle message", "queue", queue, "error", err)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
		}
	}
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
