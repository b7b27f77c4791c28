package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlocale/translation-service/internal/core/domain/semkey"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
)

func newLookupService(repo *mockTranslationRepo, cache *mockCache) *LookupService {
	return NewLookupService(semkey.NewResolver(), cache, repo, nil)
}

func approved(key, intent, keyContext, lang, value string) *translation.Translation {
	return &translation.Translation{
		Key:          key,
		Intent:       intent,
		Context:      keyContext,
		LanguageCode: lang,
		Value:        value,
		Status:       translation.StatusApproved,
	}
}

func TestLookup_CacheHitSkipsStore(t *testing.T) {
	storeCalled := false
	repo := &mockTranslationRepo{
		findApprovedFn: func(ctx context.Context, exactKey, intent, keyContext, lang string) (*translation.Translation, error) {
			storeCalled = true
			return nil, translation.ErrNotFound
		},
	}
	cache := newMockCache()
	cache.Set(context.Background(), "intent:greeting", "tr", "Merhaba")

	svc := newLookupService(repo, cache)
	result, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Merhaba", result.Value)
	assert.Equal(t, translation.SourceSharedCache, result.Source)
	assert.False(t, storeCalled)
}

func TestLookup_LocalTierHitIsAttributed(t *testing.T) {
	cache := newMockCache()
	cache.tier = ports.TierLocal
	cache.Set(context.Background(), "intent:greeting", "tr", "Merhaba")

	svc := newLookupService(&mockTranslationRepo{}, cache)
	result, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	require.NoError(t, err)
	assert.Equal(t, translation.SourceLocalCache, result.Source)
}

func TestLookup_MissLoadsStoreAndPopulatesCache(t *testing.T) {
	repo := &mockTranslationRepo{
		findApprovedFn: func(ctx context.Context, exactKey, intent, keyContext, lang string) (*translation.Translation, error) {
			assert.Equal(t, "intent:greeting", exactKey)
			assert.Equal(t, "greeting", intent)
			assert.Equal(t, "default", keyContext)
			assert.Equal(t, "tr", lang)
			return approved(exactKey, intent, keyContext, lang, "Merhaba"), nil
		},
	}
	cache := newMockCache()

	svc := newLookupService(repo, cache)
	result, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Merhaba", result.Value)
	assert.Equal(t, translation.SourceStore, result.Source)

	// The store hit must be cached for the next lookup
	val, _, ok := cache.Get(context.Background(), "intent:greeting", "tr")
	require.True(t, ok)
	assert.Equal(t, "Merhaba", val)
}

func TestLookup_FuzzyFallbackRetriesClosestKey(t *testing.T) {
	var requested []string
	repo := &mockTranslationRepo{
		findApprovedFn: func(ctx context.Context, exactKey, intent, keyContext, lang string) (*translation.Translation, error) {
			requested = append(requested, exactKey)
			if exactKey == "intent:greeting+context:app_entry" {
				return approved(exactKey, intent, keyContext, lang, "Hoş geldiniz"), nil
			}
			return nil, translation.ErrNotFound
		},
		listKeysFn: func(ctx context.Context, lang string) ([]string, error) {
			return []string{
				"intent:farewell",
				"intent:greeting+context:app_entry",
			}, nil
		},
	}
	cache := newMockCache()

	svc := newLookupService(repo, cache)
	result, err := svc.Lookup(context.Background(), "intent:greeting+context:app_entry_banner", "tr")

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Hoş geldiniz", result.Value)
	assert.Equal(t, translation.SourceStore, result.Source)
	// First the structural probe with the requested key, then the retry
	// with the scored candidate.
	assert.Equal(t, []string{"intent:greeting+context:app_entry_banner", "intent:greeting+context:app_entry"}, requested)

	// The result keeps the caller's key so the cache entry answers the
	// same request next time.
	assert.Equal(t, "intent:greeting+context:app_entry_banner", result.Key)
	val, _, ok := cache.Get(context.Background(), "intent:greeting+context:app_entry_banner", "tr")
	require.True(t, ok)
	assert.Equal(t, "Hoş geldiniz", val)
}

func TestLookup_AbsentIsNotAnError(t *testing.T) {
	repo := &mockTranslationRepo{
		listKeysFn: func(ctx context.Context, lang string) ([]string, error) {
			return []string{"intent:checkout_total"}, nil
		},
	}

	svc := newLookupService(repo, newMockCache())
	result, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Found)
	assert.Empty(t, result.Value)
	assert.Equal(t, "intent:greeting", result.Key)
	assert.Equal(t, "greeting", result.Intent)
	assert.Equal(t, "default", result.Context)
	assert.Equal(t, "tr", result.LanguageCode)
}

func TestLookup_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	repo := &mockTranslationRepo{
		findApprovedFn: func(ctx context.Context, exactKey, intent, keyContext, lang string) (*translation.Translation, error) {
			return nil, storeErr
		},
	}

	svc := newLookupService(repo, newMockCache())
	result, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, result)
}

func TestLookup_ListKeysErrorPropagates(t *testing.T) {
	listErr := errors.New("connection reset")
	repo := &mockTranslationRepo{
		listKeysFn: func(ctx context.Context, lang string) ([]string, error) {
			return nil, listErr
		},
	}

	svc := newLookupService(repo, newMockCache())
	_, err := svc.Lookup(context.Background(), "intent:greeting", "tr")

	assert.ErrorIs(t, err, listErr)
}

func TestLookup_RawKeyWithoutSeparator(t *testing.T) {
	repo := &mockTranslationRepo{
		findApprovedFn: func(ctx context.Context, exactKey, intent, keyContext, lang string) (*translation.Translation, error) {
			assert.Equal(t, "greeting", exactKey)
			assert.Equal(t, "greeting", intent)
			assert.Equal(t, "default", keyContext)
			return approved(exactKey, intent, keyContext, lang, "Merhaba"), nil
		},
	}

	svc := newLookupService(repo, newMockCache())
	result, err := svc.Lookup(context.Background(), "greeting", "tr")

	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, "Merhaba", result.Value)
}
