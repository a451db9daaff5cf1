package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/canadapost-gateway/internal/api/metrics"
)

const dedupTTL = 72 * time.Hour

// DedupChecker remembers which tracking events were already recorded.
// Key format: trackdedup:<pin>:<event_identifier>:<unix_timestamp>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact event has already been recorded.
func (d *DedupChecker) IsDuplicate(ctx context.Context, pin, event string, ts time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(pin, event, ts)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	if n > 0 {
		metrics.EventsDedupTotal.WithLabelValues("hit").Inc()
		return true, nil
	}
	metrics.EventsDedupTotal.WithLabelValues("miss").Inc()
	return false, nil
}

// Mark records that this event has been stored (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, pin, event string, ts time.Time) error {
	return d.client.Set(ctx, d.key(pin, event, ts), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(pin, event string, ts time.Time) string {
	return fmt.Sprintf("trackdedup:%s:%s:%d", pin, event, ts.Unix())
}
