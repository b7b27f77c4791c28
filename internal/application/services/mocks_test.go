package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openlocale/translation-service/internal/core/domain/contribution"
	"github.com/openlocale/translation-service/internal/core/domain/semkey"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

func newTestResolver() ports.KeyResolver { return semkey.NewResolver() }

// mockTranslationRepo implements ports.TranslationRepository with overridable
// function fields. Unset finders report absence, unset mutations succeed.
type mockTranslationRepo struct {
	createFn       func(ctx context.Context, t *translation.Translation) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*translation.Translation, error)
	findApprovedFn func(ctx context.Context, exactKey, intent, keyContext, languageCode string) (*translation.Translation, error)
	listKeysFn     func(ctx context.Context, languageCode string) ([]string, error)
	listFn         func(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, error)
	updateFn       func(ctx context.Context, t *translation.Translation) error
	upsertFn       func(ctx context.Context, t *translation.Translation) error
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	countFn        func(ctx context.Context, languageCode string) (int, error)
}

func (m *mockTranslationRepo) Create(ctx context.Context, t *translation.Translation) error {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return nil
}

func (m *mockTranslationRepo) GetByID(ctx context.Context, id uuid.UUID) (*translation.Translation, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, translation.ErrNotFound
}

func (m *mockTranslationRepo) FindApproved(ctx context.Context, exactKey, intent, keyContext, languageCode string) (*translation.Translation, error) {
	if m.findApprovedFn != nil {
		return m.findApprovedFn(ctx, exactKey, intent, keyContext, languageCode)
	}
	return nil, translation.ErrNotFound
}

func (m *mockTranslationRepo) ListKeys(ctx context.Context, languageCode string) ([]string, error) {
	if m.listKeysFn != nil {
		return m.listKeysFn(ctx, languageCode)
	}
	return nil, nil
}

func (m *mockTranslationRepo) List(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, languageCode, limit, offset)
	}
	return nil, nil
}

func (m *mockTranslationRepo) Update(ctx context.Context, t *translation.Translation) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, t)
	}
	return nil
}

func (m *mockTranslationRepo) Upsert(ctx context.Context, t *translation.Translation) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, t)
	}
	return nil
}

func (m *mockTranslationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTranslationRepo) Count(ctx context.Context, languageCode string) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, languageCode)
	}
	return 0, nil
}

// mockCache is a map-backed ports.TranslationCache that records deletions.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]string
	tier    ports.CacheTier
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]string), tier: ports.TierShared}
}

func (m *mockCache) key(key, lang string) string { return key + ":" + lang }

func (m *mockCache) Get(ctx context.Context, key, lang string) (string, ports.CacheTier, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.entries[m.key(key, lang)]
	return val, m.tier, ok
}

func (m *mockCache) Set(ctx context.Context, key, lang, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[m.key(key, lang)] = value
}

func (m *mockCache) Delete(ctx context.Context, key, lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, m.key(key, lang))
	m.deleted = append(m.deleted, m.key(key, lang))
}

func (m *mockCache) ClearLanguage(ctx context.Context, lang string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.entries {
		if len(k) > len(lang) && k[len(k)-len(lang)-1:] == ":"+lang {
			delete(m.entries, k)
		}
	}
}

func (m *mockCache) ClearAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]string)
}

func (m *mockCache) Stats(ctx context.Context) ports.CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return ports.CacheStats{SharedAvailable: true, LocalEntryCount: len(m.entries)}
}

func (m *mockCache) deletedKeys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}

// mockContributionRepo implements ports.ContributionRepository.
type mockContributionRepo struct {
	createFn       func(ctx context.Context, c *contribution.Contribution) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error)
	listByStatusFn func(ctx context.Context, status translation.Status, limit, offset int) ([]*contribution.Contribution, error)
	updateFn       func(ctx context.Context, c *contribution.Contribution) error
}

func (m *mockContributionRepo) Create(ctx context.Context, c *contribution.Contribution) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockContributionRepo) GetByID(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, translation.ErrNotFound
}

func (m *mockContributionRepo) ListByStatus(ctx context.Context, status translation.Status, limit, offset int) ([]*contribution.Contribution, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status, limit, offset)
	}
	return nil, nil
}

func (m *mockContributionRepo) Update(ctx context.Context, c *contribution.Contribution) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, c)
	}
	return nil
}

// mockNotifier records reviewed contributions.
type mockNotifier struct {
	notifyFn func(ctx context.Context, c *contribution.Contribution) error
	notified []*contribution.Contribution
}

func (m *mockNotifier) NotifyReviewed(ctx context.Context, c *contribution.Contribution) error {
	m.notified = append(m.notified, c)
	if m.notifyFn != nil {
		return m.notifyFn(ctx, c)
	}
	return nil
}
