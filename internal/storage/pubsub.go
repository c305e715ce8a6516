package storage

import (
	"context"
	"encoding/json"

	"fairprice/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// ReportChannel is the Redis pub/sub channel carrying newly appended reports.
const ReportChannel = "reports:new"

// PublishReport sends the report as JSON on ReportChannel. Without a Redis
// client it does nothing.
func (s *Service) PublishReport(ctx context.Context, rep models.Report) error {
	if s.Redis == nil {
		return nil
	}
	msgBytes, err := json.Marshal(rep)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, ReportChannel, string(msgBytes)).Err()
}

// SubscribeReports returns a subscription to ReportChannel, or nil without Redis.
func (s *Service) SubscribeReports(ctx context.Context) *redis.PubSub {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Subscribe(ctx, ReportChannel)
}
