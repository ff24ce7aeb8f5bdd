package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/skillforge/checkout-service/internal/application/ports"
	"github.com/skillforge/checkout-service/internal/config"
	"github.com/skillforge/checkout-service/internal/pkg/logger"
)

// KafkaPublisher emits purchase-completed events keyed by user ID.
// With no brokers configured the publisher is disabled and every
// publish is a no-op.
type KafkaPublisher struct {
	brokers []string
	writer  *kafka.Writer
	logger  *logger.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) *KafkaPublisher {
	brokers := []string{}
	for _, b := range strings.Split(cfg.Brokers, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}

	p := &KafkaPublisher{
		brokers: brokers,
		logger:  log,
	}
	if len(brokers) > 0 {
		p.writer = &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	return p
}

func (p *KafkaPublisher) Enabled() bool {
	return p.writer != nil
}

func (p *KafkaPublisher) PublishPurchaseCompleted(ctx context.Context, event ports.PurchaseCompletedEvent) error {
	if p.writer == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: data,
		Time:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
