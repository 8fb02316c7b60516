package store

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"platform-adapter-service/internal/domain"
)

// BreakerConfig configures the circuit breaker in front of a category store.
type BreakerConfig struct {
	Name        string
	MaxFailures uint32
	Timeout     time.Duration
	// OnStateChange, when set, receives the numeric state: 0 closed, 1 half-open, 2 open.
	OnStateChange func(name string, state float64)
}

// BreakerStore guards a CategoryMappingStorer with a circuit breaker so an unavailable
// backend is skipped quickly instead of stalling every resolution.
type BreakerStore struct {
	next CategoryMappingStorer
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps next. Not-found and already-verified results count as successes,
// as do calls abandoned by a canceled caller context.
func NewBreakerStore(next CategoryMappingStorer, cfg BreakerConfig, logger *zap.Logger) *BreakerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrCategoryMappingNotFound) ||
				errors.Is(err, ErrCategoryMappingVerified) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Category store circuit breaker state changed",
				zap.String("store", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, float64(to))
			}
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerStore) GetCategoryMapping(ctx context.Context, userID, sourceCategory, platform string) (*domain.CategoryMapping, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.GetCategoryMapping(ctx, userID, sourceCategory, platform)
	})
	return mappingResult(out, err)
}

func (b *BreakerStore) SaveCategoryMapping(ctx context.Context, mapping *domain.CategoryMapping) (*domain.CategoryMapping, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.SaveCategoryMapping(ctx, mapping)
	})
	return mappingResult(out, err)
}

// State reports the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func mappingResult(out interface{}, err error) (*domain.CategoryMapping, error) {
	if err != nil {
		return nil, err
	}
	m, _ := out.(*domain.CategoryMapping)
	return m, nil
}
