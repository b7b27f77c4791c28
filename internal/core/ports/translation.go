package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlocale/translation-service/internal/core/domain/translation"
)

// TranslationRepository defines the durable-store interface for translations.
// Absence is reported with translation.ErrNotFound, distinct from
// infrastructure errors.
type TranslationRepository interface {
	Create(ctx context.Context, t *translation.Translation) error
	GetByID(ctx context.Context, id uuid.UUID) (*translation.Translation, error)
	// FindApproved returns the first approved translation matching either
	// the exact raw key or the (intent, context) pair for the language.
	// When both predicates match different rows, the exact key wins.
	FindApproved(ctx context.Context, exactKey, intent, context, languageCode string) (*translation.Translation, error)
	// ListKeys returns the distinct raw keys with an approved translation
	// in the language, in insertion order.
	ListKeys(ctx context.Context, languageCode string) ([]string, error)
	List(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, error)
	Update(ctx context.Context, t *translation.Translation) error
	// Upsert inserts or replaces the translation for (key, language).
	Upsert(ctx context.Context, t *translation.Translation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, languageCode string) (int, error)
}

// LookupService resolves a raw key and language to the best approved
// translation through the layered cache. The result is tri-state: a found
// value, an explicit absent result (Found=false, nil error), or an error
// when the durable store could not be consulted.
type LookupService interface {
	Lookup(ctx context.Context, rawKey, languageCode string) (*translation.LookupResult, error)
}

// TranslationService manages the approved translation set and keeps the
// cache consistent with every mutation.
type TranslationService interface {
	CreateTranslation(ctx context.Context, req *translation.CreateTranslationRequest) (*translation.Translation, error)
	UpdateTranslation(ctx context.Context, id uuid.UUID, req *translation.UpdateTranslationRequest) (*translation.Translation, error)
	DeleteTranslation(ctx context.Context, id uuid.UUID) error
	ListTranslations(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, int, error)
}
