// Package platform holds the static registry of per-platform publishing constraints and
// the category vocabulary of each platform.
package platform

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"platform-adapter-service/internal/domain"
)

// Catalog is an immutable registry of platform configurations keyed by lowercase
// platform identifier.
type Catalog struct {
	configs    map[string]*domain.PlatformConfig
	categories map[string][]string
}

// New validates the given configs and builds a catalog from them. categories maps a
// platform identifier to its fixed category vocabulary, in match-priority order.
func New(configs []domain.PlatformConfig, categories map[string][]string) (*Catalog, error) {
	validate := validator.New()
	c := &Catalog{
		configs:    make(map[string]*domain.PlatformConfig, len(configs)),
		categories: make(map[string][]string, len(categories)),
	}
	for i := range configs {
		cfg := configs[i]
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("platform: invalid config %q: %w", cfg.ID, err)
		}
		if _, dup := c.configs[cfg.ID]; dup {
			return nil, fmt.Errorf("platform: duplicate config %q", cfg.ID)
		}
		c.configs[cfg.ID] = &cfg
	}
	for id, list := range categories {
		key := strings.ToLower(id)
		c.categories[key] = append([]string(nil), list...)
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It panics if the built-in tables are invalid,
// which can only happen through a programming error.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(builtinConfigs(), builtinCategories())
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Get looks up a platform configuration, ignoring case. A missing platform is not an
// error: callers treat it as "no constraints enforced".
func (c *Catalog) Get(platformID string) (*domain.PlatformConfig, bool) {
	cfg, ok := c.configs[strings.ToLower(strings.TrimSpace(platformID))]
	return cfg, ok
}

// List returns every configuration ordered by identifier.
func (c *Catalog) List() []*domain.PlatformConfig {
	out := make([]*domain.PlatformConfig, 0, len(c.configs))
	for _, cfg := range c.configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByType returns the configurations of one platform type, ordered by identifier.
func (c *Catalog) ListByType(t domain.PlatformType) []*domain.PlatformConfig {
	var out []*domain.PlatformConfig
	for _, cfg := range c.List() {
		if cfg.Type == t {
			out = append(out, cfg)
		}
	}
	return out
}

// Categories returns the category vocabulary of a platform, or nil if the platform has
// none. The returned slice must not be modified.
func (c *Catalog) Categories(platformID string) []string {
	return c.categories[strings.ToLower(strings.TrimSpace(platformID))]
}
