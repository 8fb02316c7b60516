package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platform-adapter-service/internal/domain"
)

type stubStorer struct {
	calls int
	err   error
}

func (s *stubStorer) GetCategoryMapping(_ context.Context, _, _, _ string) (*domain.CategoryMapping, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CategoryMapping{TargetCategory: "Books"}, nil
}

func (s *stubStorer) SaveCategoryMapping(_ context.Context, m *domain.CategoryMapping) (*domain.CategoryMapping, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return m, nil
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	next := &stubStorer{}
	b := NewBreakerStore(next, BreakerConfig{Name: "test"}, nil)

	m, err := b.GetCategoryMapping(context.Background(), "u", "Books", "etsy")
	require.NoError(t, err)
	assert.Equal(t, "Books", m.TargetCategory)

	in := &domain.CategoryMapping{TargetCategory: "Toys"}
	saved, err := b.SaveCategoryMapping(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, in, saved)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &stubStorer{err: errors.New("dial tcp: connection refused")}
	var states []float64
	b := NewBreakerStore(next, BreakerConfig{
		Name:          "postgres",
		MaxFailures:   2,
		Timeout:       time.Minute,
		OnStateChange: func(_ string, state float64) { states = append(states, state) },
	}, nil)

	for i := 0; i < 2; i++ {
		_, err := b.GetCategoryMapping(context.Background(), "u", "Books", "etsy")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, []float64{2}, states)

	_, err := b.GetCategoryMapping(context.Background(), "u", "Books", "etsy")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls, "open breaker must not reach the store")
}

func TestBreakerStore_DomainMissesDoNotTrip(t *testing.T) {
	for _, missErr := range []error{ErrCategoryMappingNotFound, ErrCategoryMappingVerified} {
		next := &stubStorer{err: missErr}
		b := NewBreakerStore(next, BreakerConfig{Name: "redis", MaxFailures: 1}, nil)

		for i := 0; i < 3; i++ {
			_, err := b.GetCategoryMapping(context.Background(), "u", "Books", "etsy")
			assert.ErrorIs(t, err, missErr)
		}
		assert.Equal(t, gobreaker.StateClosed, b.State())
		assert.Equal(t, 3, next.calls)
	}
}

func TestBreakerStore_CanceledCallersDoNotTrip(t *testing.T) {
	next := &stubStorer{err: fmt.Errorf("store: redis get failed: %w", context.Canceled)}
	b := NewBreakerStore(next, BreakerConfig{Name: "redis", MaxFailures: 1}, nil)

	for i := 0; i < 3; i++ {
		_, err := b.SaveCategoryMapping(context.Background(), &domain.CategoryMapping{})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 3, next.calls)
}
