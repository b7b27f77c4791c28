package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

// TranslationService manages the approved translation set. Every mutation
// invalidates the affected cache entry so stale values are never served.
type TranslationService struct {
	repo     ports.TranslationRepository
	cache    ports.TranslationCache
	resolver ports.KeyResolver
	logger   *logrus.Logger
}

func NewTranslationService(repo ports.TranslationRepository, cache ports.TranslationCache, resolver ports.KeyResolver, logger *logrus.Logger) ports.TranslationService {
	return &TranslationService{
		repo:     repo,
		cache:    cache,
		resolver: resolver,
		logger:   logger,
	}
}

func (s *TranslationService) CreateTranslation(ctx context.Context, req *translation.CreateTranslationRequest) (*translation.Translation, error) {
	key := s.resolver.Parse(req.Key)

	status := req.Status
	if status == "" {
		status = translation.StatusApproved
	}

	now := time.Now()
	t := &translation.Translation{
		ID:           uuid.New(),
		Key:          key.Raw,
		Intent:       key.Intent,
		Context:      key.Context,
		LanguageCode: req.LanguageCode,
		Value:        req.Value,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"key": key.Raw, "language": req.LanguageCode}).WithError(err).Error("failed to create translation in repo")
		}
		return nil, fmt.Errorf("failed to create translation: %w", err)
	}

	s.cache.Delete(ctx, t.Key, t.LanguageCode)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": t.Key, "language": t.LanguageCode, "id": t.ID}).Info("translation created")
	}
	return t, nil
}

func (s *TranslationService) UpdateTranslation(ctx context.Context, id uuid.UUID, req *translation.UpdateTranslationRequest) (*translation.Translation, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Value != nil {
		t.Value = *req.Value
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"id": id, "key": t.Key}).WithError(err).Error("failed to update translation in repo")
		}
		return nil, fmt.Errorf("failed to update translation: %w", err)
	}

	s.cache.Delete(ctx, t.Key, t.LanguageCode)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"id": id, "key": t.Key, "language": t.LanguageCode}).Info("translation updated")
	}
	return t, nil
}

func (s *TranslationService) DeleteTranslation(ctx context.Context, id uuid.UUID) error {
	// Need key and language for cache invalidation
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(ctx, t.Key, t.LanguageCode)
	return nil
}

func (s *TranslationService) ListTranslations(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, int, error) {
	translations, err := s.repo.List(ctx, languageCode, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.repo.Count(ctx, languageCode)
	if err != nil {
		return nil, 0, err
	}

	return translations, count, nil
}
