package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/openlocale/translation-service/internal/core/domain/semkey"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

// LookupService resolves (raw key, language) pairs to approved
// translations through the layered cache, falling back to fuzzy matching
// against all known keys when no structural match exists.
type LookupService struct {
	resolver ports.KeyResolver
	cache    ports.TranslationCache
	repo     ports.TranslationRepository
	logger   *logrus.Logger
	sf       singleflight.Group
}

func NewLookupService(resolver ports.KeyResolver, cache ports.TranslationCache, repo ports.TranslationRepository, logger *logrus.Logger) *LookupService {
	return &LookupService{
		resolver: resolver,
		cache:    cache,
		repo:     repo,
		logger:   logger,
	}
}

// Lookup returns a tri-state result: a found value, an explicit absent
// result (Found=false with nil error), or an error when the durable store
// could not be consulted. Cache misses populate the cache on a store hit.
func (s *LookupService) Lookup(ctx context.Context, rawKey, languageCode string) (*translation.LookupResult, error) {
	key := s.resolver.Parse(rawKey)
	result := &translation.LookupResult{
		Key:          key.Raw,
		Intent:       key.Intent,
		Context:      key.Context,
		LanguageCode: languageCode,
	}

	if value, tier, ok := s.cache.Get(ctx, key.Raw, languageCode); ok {
		result.Value = value
		result.Found = true
		result.Source = sourceForTier(tier)
		return result, nil
	}

	// Coalesce concurrent store loads for the same (key, language).
	v, err, _ := s.sf.Do(key.Raw+":"+languageCode, func() (any, error) {
		return s.load(ctx, key, languageCode)
	})
	if err != nil {
		if errors.Is(err, translation.ErrNotFound) {
			return result, nil
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key.Raw, "language": languageCode}).WithError(err).Error("lookup failed against durable store")
		}
		return nil, err
	}

	t := v.(*translation.Translation)
	s.cache.Set(ctx, key.Raw, languageCode, t.Value)

	result.Value = t.Value
	result.Found = true
	result.Source = translation.SourceStore
	return result, nil
}

// load queries the durable store, first by exact key or (intent, context),
// then by scoring every known key for the language and retrying with the
// closest candidate.
func (s *LookupService) load(ctx context.Context, key semkey.SemanticKey, languageCode string) (*translation.Translation, error) {
	t, err := s.repo.FindApproved(ctx, key.Raw, key.Intent, key.Context, languageCode)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, translation.ErrNotFound) {
		return nil, err
	}

	raws, err := s.repo.ListKeys(ctx, languageCode)
	if err != nil {
		return nil, err
	}
	candidates := make([]semkey.SemanticKey, 0, len(raws))
	for _, raw := range raws {
		candidates = append(candidates, s.resolver.Parse(raw))
	}

	best, ok := s.resolver.FindBestMatch(candidates, key.Intent, key.Context)
	if !ok {
		return nil, translation.ErrNotFound
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"requested": key.Raw,
			"matched":   best.Raw,
			"language":  languageCode,
		}).Debug("fuzzy-matched semantic key")
	}

	return s.repo.FindApproved(ctx, best.Raw, best.Intent, best.Context, languageCode)
}

func sourceForTier(tier ports.CacheTier) translation.Source {
	if tier == ports.TierLocal {
		return translation.SourceLocalCache
	}
	return translation.SourceSharedCache
}

var _ ports.LookupService = (*LookupService)(nil)
