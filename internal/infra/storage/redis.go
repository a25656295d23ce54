package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"

	domain "github.com/inference-gateway/editor-assistant/internal/domain"
)

const queryIndexKey = "queries:index"

// RedisStorage implements QueryStorage using Redis. Each query is a JSON
// value; a sorted set scored by creation time orders them.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		DB:       config.Database,
		Password: config.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	var ttl time.Duration
	if config.TTL > 0 {
		ttl = time.Duration(config.TTL) * time.Second
	}

	return &RedisStorage{client: client, ttl: ttl}, nil
}

func queryKey(id string) string {
	return fmt.Sprintf("query:%s", id)
}

// RecordQuery stores the query and indexes it by creation time
func (s *RedisStorage) RecordQuery(ctx context.Context, record domain.QueryRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal query: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, queryKey(record.ID), data, s.ttl)
	pipe.ZAdd(ctx, queryIndexKey, &redis.Z{
		Score:  float64(record.CreatedAt.UnixNano()),
		Member: record.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// ListQueries returns recorded queries, newest first. Index entries whose
// value expired are dropped from the index.
func (s *RedisStorage) ListQueries(ctx context.Context, limit, offset int) ([]domain.QueryRecord, error) {
	limit, offset = normalizePage(limit, offset)

	ids, err := s.client.ZRevRange(ctx, queryIndexKey, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read query index: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = queryKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load queries: %w", err)
	}

	records := make([]domain.QueryRecord, 0, len(values))
	var expired []any
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		var record domain.QueryRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal query %s: %w", ids[i], err)
		}
		records = append(records, record)
	}

	if len(expired) > 0 {
		s.client.ZRem(ctx, queryIndexKey, expired...)
	}
	return records, nil
}

// CountQueries returns the size of the query index
func (s *RedisStorage) CountQueries(ctx context.Context) (int, error) {
	count, err := s.client.ZCard(ctx, queryIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count queries: %w", err)
	}
	return int(count), nil
}

// Close closes the Redis client
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Health pings the Redis server
func (s *RedisStorage) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
