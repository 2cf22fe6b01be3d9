// Package catalog caches the offerable services and resolves a selected
// service name to its price.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"doit/backend"
	"doit/models"
	"doit/utils"

	"go.uber.org/zap"
)

// Service lazily loads the catalog once per process. The redis copy bounds
// staleness across processes; there is no refresh-on-stale inside one.
type Service struct {
	Backend backend.Client
	Cache   utils.KV
	Logger  *zap.Logger

	mu      sync.Mutex
	entries []models.ServiceCatalogEntry
	loaded  bool
}

// Entries returns the full catalog, fetching it on first use.
func (s *Service) Entries(ctx context.Context) ([]models.ServiceCatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.entries, nil
	}

	if data, err := s.Cache.Get(ctx, utils.CatalogCacheKey); err == nil {
		var cached []models.ServiceCatalogEntry
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			s.entries = cached
			s.loaded = true
			return s.entries, nil
		}
		s.Logger.Warn("discarding unreadable catalog cache entry")
	} else if !errors.Is(err, utils.ErrKeyNotFound) {
		s.Logger.Warn("catalog cache read failed", zap.Error(err))
	}

	entries, err := s.Backend.ServicePrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch service catalog: %w", err)
	}
	s.entries = entries
	s.loaded = true

	if data, err := json.Marshal(entries); err == nil {
		if err := s.Cache.Set(ctx, utils.CatalogCacheKey, string(data), utils.CatalogTTL); err != nil {
			s.Logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	s.Logger.Info("service catalog loaded", zap.Int("entries", len(entries)))
	return s.entries, nil
}

// ResolvePrice matches selectedService against catalog names, exact but
// case-insensitive. The second result is false when nothing matched; the
// caller stores an empty price in that case.
func (s *Service) ResolvePrice(ctx context.Context, selectedService string) (models.Money, bool, error) {
	if selectedService == "" {
		return models.Money{}, false, nil
	}

	entries, err := s.Entries(ctx)
	if err != nil {
		return models.Money{}, false, err
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.ServiceName, selectedService) {
			price, err := models.ParseDisplayPrice(entry.Price)
			if err != nil {
				s.Logger.Warn("catalog entry has unparseable price",
					zap.String("service", entry.ServiceName),
					zap.String("price", entry.Price))
				return models.Money{}, false, nil
			}
			return price, true, nil
		}
	}
	return models.Money{}, false, nil
}
