package feed

import (
	"context"
	"encoding/json"

	"fairprice/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Subscriber opens the Redis subscription carrying new reports.
type Subscriber interface {
	SubscribeReports(ctx context.Context) *redis.PubSub
}

// StartPubSubListener relays reports published by any process into this
// hub. It does nothing when the subscriber has no Redis connection.
func (m *ManagerService) StartPubSubListener(ctx context.Context, s Subscriber) {
	pubsub := s.SubscribeReports(ctx)
	if pubsub == nil {
		return
	}
	go func() {
		defer pubsub.Close()
		m.relay(ctx, pubsub.Channel())
	}()
}

func (m *ManagerService) relay(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var rep models.Report
			if err := json.Unmarshal([]byte(msg.Payload), &rep); err != nil {
				m.Logger.WithError(err).Warn("skipping malformed feed message")
				continue
			}
			if err := m.PublishReport(ctx, rep); err != nil {
				return
			}
		}
	}
}
