package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// ClickMessage публикуется в Kafka на каждый зафиксированный переход.
type ClickMessage struct {
	Code      string    `json:"code"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Referer   string    `json:"referer"`
	ClickedAt time.Time `json:"clicked_at"`
}

type ClickProducer struct {
	writer *kafka.Writer
}

func NewClickProducer(brokers []string, topic string) *ClickProducer {
	return &ClickProducer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *ClickProducer) PublishClick(ctx context.Context, msg ClickMessage) error {
	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Code),
		Value: value,
	})
}

func (p *ClickProducer) Close() error {
	return p.writer.Close()
}
