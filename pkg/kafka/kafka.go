// Package kafka publishes shop domain events. When no brokers are
// configured the publisher is a no-op, so the server runs standalone.
package kafka

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/nazeru/shop-csv-go/pkg/contracts"
	"github.com/nazeru/shop-csv-go/pkg/logging"
)

type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher for a comma-separated broker list.
// An empty list yields a disabled publisher.
func NewPublisher(brokersCSV, topic string) *Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish sends one event keyed by its order or product id. Failures are
// logged, never returned: events are informational and must not fail the
// operation that produced them.
func (p *Publisher) Publish(ctx context.Context, evt contracts.Event) {
	if !p.Enabled() {
		return
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	key := evt.OrderID
	if key == "" {
		key = evt.ProductID
	}
	data, err := json.Marshal(evt)
	if err != nil {
		logging.Log(logging.Fields{Service: "kafka", EventID: evt.EventID, Status: "encode_error", Message: err.Error()})
		return
	}
	msg := kafka.Message{Key: []byte(key), Value: data, Time: evt.CreatedAt}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logging.Log(logging.Fields{Service: "kafka", EventID: evt.EventID, Step: evt.Type, Status: "publish_error", Message: err.Error()})
	}
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
