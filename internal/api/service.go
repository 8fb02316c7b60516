package api

import (
	"errors"
	"fmt"

	"platform-adapter-service/internal/adapter"
	"platform-adapter-service/internal/attribute"
	"platform-adapter-service/internal/category"
	"platform-adapter-service/internal/domain"
	"platform-adapter-service/internal/fieldmap"
	"platform-adapter-service/internal/platform"
)

// ErrUnknownPlatform is returned for a platform identifier absent from the catalog.
var ErrUnknownPlatform = errors.New("api: unknown platform")

// Service is the transport-independent core shared by the HTTP and gRPC handlers. It
// holds one adapter per catalogued platform.
type Service struct {
	platforms *platform.Catalog
	deps      adapter.Deps
	adapters  map[string]*adapter.Adapter
}

// NewService builds adapters for every platform in the catalog. Nil dependencies fall
// back to the built-in registries.
func NewService(platforms *platform.Catalog, deps adapter.Deps) *Service {
	if platforms == nil {
		platforms = platform.Default()
	}
	if deps.Fields == nil {
		deps.Fields = fieldmap.Default()
	}
	if deps.Attributes == nil {
		deps.Attributes = attribute.Default()
	}
	if deps.Categories == nil {
		deps.Categories = category.NewMapper(platforms)
	}

	s := &Service{platforms: platforms, deps: deps, adapters: make(map[string]*adapter.Adapter)}
	for _, cfg := range platforms.List() {
		s.adapters[cfg.ID] = adapter.New(cfg, deps)
	}
	return s
}

// Adapter returns the adapter of a platform, ignoring case.
func (s *Service) Adapter(platformID string) (*adapter.Adapter, error) {
	cfg, ok := s.platforms.Get(platformID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platformID)
	}
	return s.adapters[cfg.ID], nil
}

// Platform returns the configuration of a platform, ignoring case.
func (s *Service) Platform(platformID string) (*domain.PlatformConfig, error) {
	cfg, ok := s.platforms.Get(platformID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platformID)
	}
	return cfg, nil
}

// Platforms lists platform configurations, optionally restricted to one type.
func (s *Service) Platforms(t domain.PlatformType) []*domain.PlatformConfig {
	if t == "" {
		return s.platforms.List()
	}
	return s.platforms.ListByType(t)
}

// MatchCategory runs the pure category matcher against a platform's vocabulary.
func (s *Service) MatchCategory(platformID, source string) (category.Match, error) {
	cfg, err := s.Platform(platformID)
	if err != nil {
		return category.Match{}, err
	}
	return s.deps.Categories.FindBestCategoryMatch(source, cfg.ID), nil
}

func (s *Service) attributes() *attribute.Catalog { return s.deps.Attributes }

func (s *Service) fields() *fieldmap.Mapper { return s.deps.Fields }

func (s *Service) categories() *category.Mapper { return s.deps.Categories }
