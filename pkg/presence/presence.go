package presence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Tracker records which subjects are currently waiting on or joined to a
// channel. Entries live in Redis under a short TTL and disappear on their own
// when a participant stops heartbeating.
type Tracker struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewTracker creates a new presence tracker
func NewTracker(redisClient *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{
		redis: redisClient,
		ttl:   ttl,
	}
}

func key(channel, subjectID string) string {
	return fmt.Sprintf("presence:%s:%s", channel, subjectID)
}

// Heartbeat marks a subject present on a channel, refreshing the TTL
func (t *Tracker) Heartbeat(ctx context.Context, channel, subjectID, role string) error {
	err := t.redis.Set(ctx, key(channel, subjectID), role, t.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to record presence: %w", err)
	}

	return nil
}

// Leave removes a subject from a channel's presence set
func (t *Tracker) Leave(ctx context.Context, channel, subjectID string) error {
	err := t.redis.Del(ctx, key(channel, subjectID)).Err()
	if err != nil {
		return fmt.Errorf("failed to remove presence: %w", err)
	}

	return nil
}

// List returns the subjects currently present on a channel with their roles
func (t *Tracker) List(ctx context.Context, channel string) (map[string]string, error) {
	prefix := fmt.Sprintf("presence:%s:", channel)

	keys, err := t.redis.Keys(ctx, prefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list presence keys: %w", err)
	}

	present := make(map[string]string, len(keys))
	for _, k := range keys {
		role, err := t.redis.Get(ctx, k).Result()
		if err == redis.Nil {
			// Expired between KEYS and GET
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read presence entry: %w", err)
		}
		present[strings.TrimPrefix(k, prefix)] = role
	}

	return present, nil
}
