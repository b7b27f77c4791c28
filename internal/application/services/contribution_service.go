package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/domain/contribution"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

// ContributionService runs the moderation workflow for community
// submissions. Approval publishes an approved translation and invalidates
// the cached entry for its (key, language).
type ContributionService struct {
	repo         ports.ContributionRepository
	translations ports.TranslationRepository
	cache        ports.TranslationCache
	resolver     ports.KeyResolver
	notifier     ports.ContributionNotifier
	logger       *logrus.Logger
}

func NewContributionService(repo ports.ContributionRepository, translations ports.TranslationRepository, cache ports.TranslationCache, resolver ports.KeyResolver, notifier ports.ContributionNotifier, logger *logrus.Logger) ports.ContributionService {
	return &ContributionService{
		repo:         repo,
		translations: translations,
		cache:        cache,
		resolver:     resolver,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *ContributionService) Submit(ctx context.Context, req *contribution.SubmitContributionRequest) (*contribution.Contribution, error) {
	key := s.resolver.Parse(req.Key)

	c := &contribution.Contribution{
		ID:             uuid.New(),
		Key:            key.Raw,
		Intent:         key.Intent,
		Context:        key.Context,
		LanguageCode:   req.LanguageCode,
		Value:          req.Value,
		SubmitterEmail: req.SubmitterEmail,
		Status:         translation.StatusPending,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to submit contribution: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": c.Key, "language": c.LanguageCode, "id": c.ID}).Info("contribution submitted")
	}
	return c, nil
}

func (s *ContributionService) Approve(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != translation.StatusPending {
		return nil, fmt.Errorf("contribution %s has already been reviewed", id)
	}

	now := time.Now()
	c.Status = translation.StatusApproved
	c.ReviewedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to approve contribution: %w", err)
	}

	t := &translation.Translation{
		ID:           uuid.New(),
		Key:          c.Key,
		Intent:       c.Intent,
		Context:      c.Context,
		LanguageCode: c.LanguageCode,
		Value:        c.Value,
		Status:       translation.StatusApproved,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.translations.Upsert(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to publish approved translation: %w", err)
	}

	// A stale cached value must not survive the approval.
	s.cache.Delete(ctx, c.Key, c.LanguageCode)

	s.notifyReviewed(ctx, c)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": c.Key, "language": c.LanguageCode, "id": c.ID}).Info("contribution approved")
	}
	return c, nil
}

func (s *ContributionService) Reject(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != translation.StatusPending {
		return nil, fmt.Errorf("contribution %s has already been reviewed", id)
	}

	now := time.Now()
	c.Status = translation.StatusRejected
	c.ReviewedAt = &now
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to reject contribution: %w", err)
	}

	s.notifyReviewed(ctx, c)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"key": c.Key, "language": c.LanguageCode, "id": c.ID}).Info("contribution rejected")
	}
	return c, nil
}

func (s *ContributionService) ListPending(ctx context.Context, limit, offset int) ([]*contribution.Contribution, error) {
	return s.repo.ListByStatus(ctx, translation.StatusPending, limit, offset)
}

// notifyReviewed delivers the moderation outcome best-effort; a delivery
// failure never aborts the workflow.
func (s *ContributionService) notifyReviewed(ctx context.Context, c *contribution.Contribution) {
	if s.notifier == nil || c.SubmitterEmail == "" {
		return
	}
	if err := s.notifier.NotifyReviewed(ctx, c); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"id": c.ID, "email": c.SubmitterEmail}).WithError(err).Warn("failed to notify contributor")
	}
}
