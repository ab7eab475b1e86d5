package service

import (
	"context"
	"time"

	"Iris_Blog/internal/logger"
	"Iris_Blog/internal/model"
	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/repository/mysql"
)

type Sender func(ctx context.Context, ob *model.SearchOutbox) error

// SearchRelayer 把 outbox 里的帖子事件异步投递给搜索索引服务
// 尽力而为：失败标记重试，索引本身只要求最终一致
type SearchRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewSearchRelayer(sender Sender) *SearchRelayer {
	return &SearchRelayer{
		repo:      &mysql.OutboxRepository{DB: mysql.DB},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run 投递循环启动器
func (r *SearchRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *SearchRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		logger.Log.WithError(err).Error("search outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender 生产投递器
func KafkaSender(p *pkg.SearchProducer) Sender {
	return func(ctx context.Context, ob *model.SearchOutbox) error {
		return p.PublishSearchEvent(ctx, ob.PostID, []byte(ob.Payload))
	}
}

// LogSender 本地调试用的占位投递器
func LogSender(ctx context.Context, ob *model.SearchOutbox) error {
	logger.Log.WithField("event", ob.EventType).WithField("post_id", ob.PostID).Info("search outbox send")
	return nil
}
