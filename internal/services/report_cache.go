package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beaverchoice/fulfillment-backend/internal/platform/envutil"
	"github.com/beaverchoice/fulfillment-backend/internal/platform/logger"
)

// ReportCache is a read-through Redis cache for financial reports. The
// ledger is append-only within a business day in practice, so a short TTL
// keyed by cutoff date is safe. A nil *ReportCache is valid and caches
// nothing.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewReportCache connects to Redis using REDIS_ADDR. When REDIS_ADDR is
// unset it returns nil and reports are always computed fresh.
func NewReportCache(baseLog *logger.Logger) *ReportCache {
	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: envutil.Str("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	})
	return &ReportCache{
		client: client,
		ttl:    time.Duration(envutil.Int("REPORT_CACHE_TTL_SECONDS", 300)) * time.Second,
		log:    baseLog.With("service", "ReportCache"),
	}
}

func cacheKey(asOf string) string {
	return fmt.Sprintf("report:%s", asOf)
}

func (c *ReportCache) Get(ctx context.Context, asOf string) (*FinancialReport, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, cacheKey(asOf)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("report cache read failed", "as_of", asOf, "error", err)
		}
		return nil, false
	}
	var report FinancialReport
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn("report cache entry corrupt, ignoring", "as_of", asOf, "error", err)
		return nil, false
	}
	return &report, true
}

func (c *ReportCache) Set(ctx context.Context, asOf string, report *FinancialReport) {
	if c == nil || report == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(asOf), raw, c.ttl).Err(); err != nil {
		c.log.Warn("report cache write failed", "as_of", asOf, "error", err)
	}
}
