package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"pump-radar/internal/domain"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	expectedPumpKeyPrefix = "expected_pump:"
	DefaultPumpEpsilon    = 2 * time.Minute
)

// ExpectedPumpTracker remembers, per group, when the last countdown said
// the pump would start.
type ExpectedPumpTracker struct {
	tracer  trace.Tracer
	redis   RedisClient
	epsilon time.Duration
}

func NewExpectedPumpTracker(tracer trace.Tracer, redisClient RedisClient, epsilon time.Duration) *ExpectedPumpTracker {
	if epsilon <= 0 {
		epsilon = DefaultPumpEpsilon
	}
	return &ExpectedPumpTracker{tracer: tracer, redis: redisClient, epsilon: epsilon}
}

func (t *ExpectedPumpTracker) Epsilon() time.Duration { return t.epsilon }

// Record stores p. The entry expires once its window has passed.
func (t *ExpectedPumpTracker) Record(ctx context.Context, p domain.ExpectedPump, now time.Time) error {
	ctx, span := t.tracer.Start(ctx, "expected-pump.record")
	defer span.End()

	ttl := p.ExpectedAt.Add(t.epsilon).Sub(now)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := t.redis.Set(ctx, expectedPumpKey(p.GroupID), data, ttl).Err(); err != nil {
		return fmt.Errorf("record expected pump for group %d: %w", p.GroupID, err)
	}
	return nil
}

// Get returns nil without error when nothing is expected for the group.
func (t *ExpectedPumpTracker) Get(ctx context.Context, groupID int64) (*domain.ExpectedPump, error) {
	ctx, span := t.tracer.Start(ctx, "expected-pump.get")
	defer span.End()

	data, err := t.redis.Get(ctx, expectedPumpKey(groupID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load expected pump for group %d: %w", groupID, err)
	}
	var p domain.ExpectedPump
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode expected pump for group %d: %w", groupID, err)
	}
	return &p, nil
}

// InWindow reports whether at lies within epsilon of the group's expected
// pump time.
func (t *ExpectedPumpTracker) InWindow(ctx context.Context, groupID int64, at time.Time) (bool, *domain.ExpectedPump, error) {
	p, err := t.Get(ctx, groupID)
	if err != nil || p == nil {
		return false, nil, err
	}
	d := at.Sub(p.ExpectedAt)
	if d < 0 {
		d = -d
	}
	return d <= t.epsilon, p, nil
}

func expectedPumpKey(groupID int64) string {
	return expectedPumpKeyPrefix + strconv.FormatInt(groupID, 10)
}
