package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"pet-care-reminders/internal/domain/reminders"
)

const (
	keyPrefix  = "reminder_dedup:"
	DefaultTTL = 60 * 24 * time.Hour
)

// DedupRepo implementa el ledger sobre Redis. Las claves expiran solas
// (TTL), así el ledger queda acotado sin jobs de limpieza.
type DedupRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDedupRepo(client *redis.Client, ttl time.Duration) *DedupRepo {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DedupRepo{client: client, ttl: ttl}
}

func (r *DedupRepo) Seen(ctx context.Context, key reminders.DedupKey) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+key.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *DedupRepo) Mark(ctx context.Context, key reminders.DedupKey) error {
	// SETNX: si dos procesos marcan a la vez, gana uno y el otro no falla
	return r.client.SetNX(ctx, keyPrefix+key.String(), "1", r.ttl).Err()
}
