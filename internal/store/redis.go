package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"platform-adapter-service/internal/domain"
)

const defaultKeyPrefix = "catmap:"

// RedisStore implements CategoryMappingStorer on Redis. Each mapping is a JSON value
// under catmap:{user}:{platform}:{source}, with ':' and '\' escaped inside each segment.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a store on an existing client. An empty prefix selects "catmap:".
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

var keySegmentEscaper = strings.NewReplacer(`\`, `\\`, `:`, `\:`)

func (s *RedisStore) key(userID, platform, sourceCategory string) string {
	return s.keyPrefix + keySegmentEscaper.Replace(userID) + ":" +
		keySegmentEscaper.Replace(platform) + ":" + keySegmentEscaper.Replace(sourceCategory)
}

func (s *RedisStore) GetCategoryMapping(ctx context.Context, userID, sourceCategory, platform string) (*domain.CategoryMapping, error) {
	return s.get(ctx, s.client, s.key(userID, platform, sourceCategory))
}

func (s *RedisStore) get(ctx context.Context, c redis.Cmdable, key string) (*domain.CategoryMapping, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCategoryMappingNotFound
		}
		return nil, fmt.Errorf("store: redis get %s failed: %w", key, err)
	}
	var m domain.CategoryMapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("store: redis value %s is not a category mapping: %w", key, err)
	}
	return &m, nil
}

// SaveCategoryMapping upserts the mapping under an optimistic WATCH transaction. An
// unverified candidate never replaces a verified mapping.
func (s *RedisStore) SaveCategoryMapping(ctx context.Context, mapping *domain.CategoryMapping) (*domain.CategoryMapping, error) {
	key := s.key(mapping.UserID, mapping.Platform, mapping.SourceCategory)
	var saved domain.CategoryMapping

	txf := func(tx *redis.Tx) error {
		now := time.Now().UTC()
		saved = *mapping
		saved.CreatedAt, saved.UpdatedAt = now, now
		if saved.ID == uuid.Nil {
			saved.ID = uuid.New()
		}

		existing, err := s.get(ctx, tx, key)
		switch {
		case err == nil:
			if existing.IsVerified && !mapping.IsVerified {
				return ErrCategoryMappingVerified
			}
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
		case !errors.Is(err, ErrCategoryMappingNotFound):
			return err
		}

		payload, err := json.Marshal(saved)
		if err != nil {
			return fmt.Errorf("store: failed to encode category mapping: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, key); err != nil {
		if errors.Is(err, ErrCategoryMappingVerified) {
			return nil, err
		}
		return nil, fmt.Errorf("store: redis save %s failed: %w", key, err)
	}
	return &saved, nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
