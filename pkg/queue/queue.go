package queue

import (
	"bookclub_backend/pkg/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Producer publishes push-notification payloads for the out-of-process
// delivery worker. The engine itself never talks to APNs/FCM.
type Producer interface {
	Publish(body []byte) error
	Close() error
}

type amqpProducer struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewProducer connects to RabbitMQ and declares a durable queue.
func NewProducer(url, name string) (Producer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	notifyClose := make(chan *amqp.Error)
	conn.NotifyClose(notifyClose)
	go func() {
		if err := <-notifyClose; err != nil {
			logger.Log.Error("push queue connection closed", zap.Error(err))
		}
	}()

	return &amqpProducer{conn: conn, ch: ch, queue: name}, nil
}

func (p *amqpProducer) Publish(body []byte) error {
	return p.ch.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *amqpProducer) Close() error {
	if err := p.ch.Close(); err != nil {
		return err
	}
	return p.conn.Close()
}

// NopProducer drops payloads; used when the queue is disabled in config.
type NopProducer struct{}

func (NopProducer) Publish([]byte) error { return nil }
func (NopProducer) Close() error         { return nil }
