package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// statsRetention is how long daily counter keys live in Redis.
const statsRetention = 31 * 24 * time.Hour

// RealtimeStats are today's counters, served without touching the visitor
// store.
type RealtimeStats struct {
	PageViews      int64 `json:"todayPageViews"`
	UniqueVisitors int64 `json:"todayUniqueVisitors"`
}

// StatsRecorder maintains cheap per-day counters in Redis: a page-view
// counter and a unique-visitor set. Counter updates are best-effort: they
// run after the durable append, and failures are logged, never surfaced.
type StatsRecorder struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewStatsRecorder creates a recorder on the given Redis client.
func NewStatsRecorder(rdb *redis.Client, log *slog.Logger) *StatsRecorder {
	return &StatsRecorder{rdb: rdb, log: log}
}

// RecordPageView bumps today's page-view counter and marks the visitor as
// seen today.
func (s *StatsRecorder) RecordPageView(ctx context.Context, visitorID string, now time.Time) {
	day := now.UTC().Format("2006-01-02")

	viewsKey := fmt.Sprintf("analytics:daily:%s", day)
	if err := s.rdb.HIncrBy(ctx, viewsKey, "page_views", 1).Err(); err != nil {
		s.log.WarnContext(ctx, "failed to update page view counter", "error", err)
		return
	}
	s.rdb.Expire(ctx, viewsKey, statsRetention)

	visitorsKey := fmt.Sprintf("analytics:visitors:%s", day)
	if err := s.rdb.SAdd(ctx, visitorsKey, visitorID).Err(); err != nil {
		s.log.WarnContext(ctx, "failed to update visitor set", "error", err)
		return
	}
	s.rdb.Expire(ctx, visitorsKey, statsRetention)
}

// Realtime reads today's counters.
func (s *StatsRecorder) Realtime(ctx context.Context, now time.Time) (RealtimeStats, error) {
	day := now.UTC().Format("2006-01-02")

	pageViews, err := s.rdb.HGet(ctx, fmt.Sprintf("analytics:daily:%s", day), "page_views").Int64()
	if err != nil && err != redis.Nil {
		return RealtimeStats{}, fmt.Errorf("read page view counter: %w", err)
	}

	uniqueVisitors, err := s.rdb.SCard(ctx, fmt.Sprintf("analytics:visitors:%s", day)).Result()
	if err != nil && err != redis.Nil {
		return RealtimeStats{}, fmt.Errorf("read visitor set: %w", err)
	}

	return RealtimeStats{
		PageViews:      pageViews,
		UniqueVisitors: uniqueVisitors,
	}, nil
}
