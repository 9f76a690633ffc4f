package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	redis "github.com/go-redis/redis/v8"
)

// Config is the redis configuration
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

const (
	keyPrefix     = "car-expense:"
	generationKey = keyPrefix + "generation"
)

// DefaultTTL bounds how long views of old generations linger.
const DefaultTTL = 30 * time.Second

// RedisCache implements SettlementCache on top of redis
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a RedisCache with its own client
func NewRedisCache(config Config) *RedisCache {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:        config.Addr,
			Password:    config.Password,
			DB:          config.DB,
			DialTimeout: 2 * time.Second,
		}),
		ttl: ttl,
	}
}

var _ portsrepo.SettlementCache = (*RedisCache)(nil)

// Ping checks that the server is reachable
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close releases the client
func (r *RedisCache) Close() error {
	return r.rdb.Close()
}

// makeKey namespaces a settlement view key by generation
func makeKey(generation int64, key string) string {
	return fmt.Sprintf("%sg%d:%s", keyPrefix, generation, key)
}

// Generation reads the shared generation counter. A missing counter is generation 0.
func (r *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := r.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get %s: %w", generationKey, err)
	}
	return gen, nil
}

// GetSettlements reads a cached view. A missing key is a miss, not an error.
func (r *RedisCache) GetSettlements(ctx context.Context, generation int64, key string) ([]domain.Settlement, bool, error) {
	val, err := r.rdb.Get(ctx, makeKey(generation, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	rows, err := decodeSettlements(val)
	if err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

// SetSettlements writes a view with the configured TTL. A view of an outdated generation
// lands under a key nobody reads any more and expires with the TTL.
func (r *RedisCache) SetSettlements(ctx context.Context, generation int64, key string, rows []domain.Settlement) error {
	value, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode settlements: %w", err)
	}
	if err := r.rdb.Set(ctx, makeKey(generation, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate advances the generation shared by every process using this redis
func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.rdb.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", generationKey, err)
	}
	return nil
}

func decodeSettlements(val []byte) ([]domain.Settlement, error) {
	rows := []domain.Settlement{}
	if err := json.Unmarshal(val, &rows); err != nil {
		return nil, fmt.Errorf("decode cached settlements: %w", err)
	}
	return rows, nil
}
