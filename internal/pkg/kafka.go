package pkg

import (
	"context"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// SearchProducer 搜索索引事件生产者
// 以帖子 id 做分区键，同一帖子的事件落在同一分区，消费侧按序重放
type SearchProducer struct {
	writer *kafka.Writer
}

func NewSearchProducer(cfg KafkaConfig) *SearchProducer {
	return &SearchProducer{writer: &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}}
}

// PublishSearchEvent 投递一条帖子事件，payload 为 outbox 行的原始 JSON
func (p *SearchProducer) PublishSearchEvent(ctx context.Context, postID uint64, payload []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(postID, 10)),
		Value: payload,
	})
}

func (p *SearchProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
