package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platform-adapter-service/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisStore(client, "")
}

func candidate(target string, confidence float64) *domain.CategoryMapping {
	return &domain.CategoryMapping{
		UserID:          "user-1",
		SourceCategory:  "Kitchen Tools",
		Platform:        "amazon",
		TargetCategory:  target,
		ConfidenceScore: confidence,
	}
}

func TestRedisStore_GetMissing(t *testing.T) {
	_, s := newTestRedis(t)

	m, err := s.GetCategoryMapping(context.Background(), "user-1", "Kitchen Tools", "amazon")
	assert.True(t, errors.Is(err, ErrCategoryMappingNotFound))
	assert.Nil(t, m)
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	mr, s := newTestRedis(t)
	ctx := context.Background()

	saved, err := s.SaveCategoryMapping(ctx, candidate("Home & Kitchen", 0.8))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.True(t, mr.Exists("catmap:user-1:amazon:Kitchen Tools"))

	got, err := s.GetCategoryMapping(ctx, "user-1", "Kitchen Tools", "amazon")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Home & Kitchen", got.TargetCategory)
	assert.Equal(t, 0.8, got.ConfidenceScore)
}

func TestRedisStore_SaveUpdatesUnverified(t *testing.T) {
	_, s := newTestRedis(t)
	ctx := context.Background()

	first, err := s.SaveCategoryMapping(ctx, candidate("Home & Kitchen", 0.75))
	require.NoError(t, err)

	second, err := s.SaveCategoryMapping(ctx, candidate("Tools & Home Improvement", 0.8))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "upsert keeps the identity of the existing mapping")
	assert.Equal(t, first.CreatedAt.Unix(), second.CreatedAt.Unix())
	assert.Equal(t, "Tools & Home Improvement", second.TargetCategory)
}

func TestRedisStore_SaveNeverUnverifies(t *testing.T) {
	_, s := newTestRedis(t)
	ctx := context.Background()

	verified := candidate("Home & Kitchen", 1.0)
	verified.IsVerified = true
	_, err := s.SaveCategoryMapping(ctx, verified)
	require.NoError(t, err)

	_, err = s.SaveCategoryMapping(ctx, candidate("Tools & Home Improvement", 0.8))
	assert.True(t, errors.Is(err, ErrCategoryMappingVerified))

	got, err := s.GetCategoryMapping(ctx, "user-1", "Kitchen Tools", "amazon")
	require.NoError(t, err)
	assert.True(t, got.IsVerified)
	assert.Equal(t, "Home & Kitchen", got.TargetCategory)
}

func TestRedisStore_UsersAreIsolated(t *testing.T) {
	_, s := newTestRedis(t)
	ctx := context.Background()

	_, err := s.SaveCategoryMapping(ctx, candidate("Home & Kitchen", 0.8))
	require.NoError(t, err)

	_, err = s.GetCategoryMapping(ctx, "user-2", "Kitchen Tools", "amazon")
	assert.True(t, errors.Is(err, ErrCategoryMappingNotFound))
}

func TestRedisStore_SeparatorInSegmentsDoesNotCollide(t *testing.T) {
	mr, s := newTestRedis(t)
	ctx := context.Background()

	_, err := s.SaveCategoryMapping(ctx, &domain.CategoryMapping{
		UserID: "u:amazon", SourceCategory: "x", Platform: "amazon",
		TargetCategory: "Books", ConfidenceScore: 0.8,
	})
	require.NoError(t, err)
	assert.True(t, mr.Exists(`catmap:u\:amazon:amazon:x`))

	_, err = s.GetCategoryMapping(ctx, "u", "amazon:x", "amazon")
	assert.True(t, errors.Is(err, ErrCategoryMappingNotFound))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, s := newTestRedis(t)
	require.NoError(t, mr.Set("catmap:user-1:amazon:Kitchen Tools", "not json"))

	_, err := s.GetCategoryMapping(context.Background(), "user-1", "Kitchen Tools", "amazon")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCategoryMappingNotFound))
}

func TestRedisStore_Unavailable(t *testing.T) {
	mr, s := newTestRedis(t)
	mr.Close()

	_, err := s.GetCategoryMapping(context.Background(), "user-1", "Kitchen Tools", "amazon")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCategoryMappingNotFound))
	assert.Error(t, s.Ping(context.Background()))
}
