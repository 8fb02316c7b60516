package category

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/store"
)

// Resolution outcomes reported to a Recorder.
const (
	OutcomeCached   = "cached"
	OutcomeComputed = "computed"
	OutcomeFallback = "fallback"
)

// SaveThreshold is the confidence above which a computed match is remembered for review.
const SaveThreshold = 0.7

// Resolution is the result of MapCategory. Cached is true only for verified stored mappings.
type Resolution struct {
	Match
	Cached bool `json:"cached"`
}

// Vocabulary supplies the category list of a platform.
type Vocabulary interface {
	Categories(platformID string) []string
}

// Recorder observes how category resolutions were answered.
type Recorder interface {
	ObserveCategoryResolution(platform, outcome string)
}

// Mapper resolves categories against platform vocabularies and, when a store is
// configured, consults and feeds the stored mappings.
type Mapper struct {
	vocab    Vocabulary
	store    store.CategoryMappingStorer
	timeout  time.Duration
	logger   *zap.Logger
	recorder Recorder
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithStore enables lookups and best-effort saves against s.
func WithStore(s store.CategoryMappingStorer) Option {
	return func(m *Mapper) { m.store = s }
}

// WithTimeout bounds each store call. Zero leaves calls bounded only by the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(m *Mapper) { m.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Mapper) { m.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(m *Mapper) { m.recorder = r }
}

// NewMapper creates a Mapper over the given vocabulary.
func NewMapper(vocab Vocabulary, opts ...Option) *Mapper {
	m := &Mapper{vocab: vocab, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FindBestCategoryMatch matches source against the platform's vocabulary. Unknown
// platforms pass the source through with confidence 0.5.
func (m *Mapper) FindBestCategoryMatch(source, platform string) Match {
	return FindBestMatch(source, m.vocab.Categories(platform))
}

// MapCategory resolves source for platform. A verified stored mapping wins with full
// confidence. Otherwise the match is computed and, above SaveThreshold, saved unverified.
// Store failures of any kind degrade to the computed match and are never returned.
func (m *Mapper) MapCategory(ctx context.Context, source, platform string) Resolution {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if m.store == nil {
		res := Resolution{Match: m.FindBestCategoryMatch(source, platform)}
		m.observe(platform, OutcomeComputed)
		return res
	}

	userID := domain.UserIDFromContext(ctx)
	log := m.logger.With(zap.String("platform", platform), zap.String("source_category", source))

	outcome := OutcomeComputed
	existing, err := m.lookup(ctx, userID, source, platform)
	switch {
	case err == nil && existing != nil && existing.IsVerified:
		m.observe(platform, OutcomeCached)
		return Resolution{
			Match:  Match{Category: existing.TargetCategory, Confidence: ConfidenceExact},
			Cached: true,
		}
	case err != nil && !errors.Is(err, store.ErrCategoryMappingNotFound):
		log.Warn("Category mapping lookup failed, using computed match", zap.Error(err))
		outcome = OutcomeFallback
	}

	match := m.FindBestCategoryMatch(source, platform)
	if match.Confidence > SaveThreshold {
		candidate := &domain.CategoryMapping{
			UserID:          userID,
			SourceCategory:  source,
			Platform:        platform,
			TargetCategory:  match.Category,
			ConfidenceScore: match.Confidence,
			IsVerified:      false,
		}
		if err := m.save(ctx, candidate); err != nil {
			log.Warn("Failed to save category mapping candidate", zap.Error(err))
		}
	}

	m.observe(platform, outcome)
	return Resolution{Match: match}
}

func (m *Mapper) lookup(ctx context.Context, userID, source, platform string) (*domain.CategoryMapping, error) {
	ctx, cancel := m.bounded(ctx)
	defer cancel()
	return m.store.GetCategoryMapping(ctx, userID, source, platform)
}

func (m *Mapper) save(ctx context.Context, mapping *domain.CategoryMapping) error {
	ctx, cancel := m.bounded(ctx)
	defer cancel()
	_, err := m.store.SaveCategoryMapping(ctx, mapping)
	return err
}

func (m *Mapper) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout > 0 {
		return context.WithTimeout(ctx, m.timeout)
	}
	return context.WithCancel(ctx)
}

func (m *Mapper) observe(platform, outcome string) {
	if m.recorder != nil {
		m.recorder.ObserveCategoryResolution(platform, outcome)
	}
}
