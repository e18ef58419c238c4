package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/config"
	"github.com/RodolfoDavidAlvarez/wasteprogram-sub000/internal/models"

	"github.com/go-redis/redis/v8"
)

// CacheClient defines the interface for cache operations
type CacheClient interface {
	GetRecord(ctx context.Context, vr string) (*models.DeliveryRecord, error)
	SetRecord(ctx context.Context, record *models.DeliveryRecord) error
	DeleteRecord(ctx context.Context, vr string) error
	Close() error
}

// RedisClient implements CacheClient using Redis
type RedisClient struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
}

// NewRedisClient creates a new Redis client
func NewRedisClient(cfg config.RedisConfig) (CacheClient, error) {
	if !cfg.Enabled {
		return &RedisClient{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client:  client,
		enabled: true,
		ttl:     time.Hour,
	}, nil
}

func recordKey(vr string) string {
	return fmt.Sprintf("delivery:%s", vr)
}

// GetRecord retrieves a cached delivery record by VR number
func (r *RedisClient) GetRecord(ctx context.Context, vr string) (*models.DeliveryRecord, error) {
	if !r.enabled {
		return nil, redis.Nil
	}

	data, err := r.client.Get(ctx, recordKey(vr)).Result()
	if err != nil {
		return nil, err
	}

	var record models.DeliveryRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SetRecord caches a delivery record keyed by VR number
func (r *RedisClient) SetRecord(ctx context.Context, record *models.DeliveryRecord) error {
	if !r.enabled {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, recordKey(record.VRNumber), data, r.ttl).Err()
}

// DeleteRecord removes a delivery record from the cache
func (r *RedisClient) DeleteRecord(ctx context.Context, vr string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Del(ctx, recordKey(vr)).Err()
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	if !r.enabled || r.client == nil {
		return nil
	}
	return r.client.Close()
}
