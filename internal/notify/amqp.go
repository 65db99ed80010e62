package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"refnet-client/internal/logger"
)

const notificationsExchange = "notifications_fanout"

// AMQPPublisher fans notifications out over RabbitMQ so device-facing
// relays can show them as toasts. Publish failures are logged and dropped;
// a lost toast never fails the action that produced it.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(notificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

type payload struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	SentAt   time.Time `json:"sent_at"`
}

func (p *AMQPPublisher) Notify(message string, severity Severity) {
	body, err := json.Marshal(payload{Message: message, Severity: severity, SentAt: time.Now().UTC()})
	if err != nil {
		logger.L().Error("failed to encode notification", zap.Error(err))
		return
	}

	err = p.ch.PublishWithContext(context.Background(), notificationsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now().UTC(),
		Body:        body,
	})
	if err != nil {
		logger.L().Error("failed to publish notification",
			zap.String("message", message),
			zap.Error(err),
		)
	}
}

// Fanout combines several notifiers into one, so the console renderer and
// the AMQP relay can both receive every message.
type Fanout []Notifier

func (f Fanout) Notify(message string, severity Severity) {
	for _, n := range f {
		n.Notify(message, severity)
	}
}
