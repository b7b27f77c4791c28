package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
	"github.com/openlocale/translation-service/internal/infrastructure/db"
)

// TranslationRepository implements the translation repository interface on PostgreSQL.
type TranslationRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewTranslationRepository creates a new translation repository.
func NewTranslationRepository(database *db.Database, logger *logrus.Logger) ports.TranslationRepository {
	return &TranslationRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a new translation row.
func (r *TranslationRepository) Create(ctx context.Context, t *translation.Translation) error {
	query := `
		INSERT INTO translations (id, key, intent, context, language_code, value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.DB.ExecContext(ctx, query,
		t.ID, t.Key, t.Intent, t.Context, t.LanguageCode, t.Value, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create translation: %w", err)
	}

	return nil
}

// GetByID retrieves a translation by ID.
func (r *TranslationRepository) GetByID(ctx context.Context, id uuid.UUID) (*translation.Translation, error) {
	var t translation.Translation
	query := `
		SELECT id, key, intent, context, language_code, value, status, created_at, updated_at
		FROM translations
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &t, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, translation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get translation by ID: %w", err)
	}

	return &t, nil
}

// FindApproved returns the first approved translation matching either the
// exact raw key or the (intent, context) pair for the language. The exact
// key wins deliberately: the match predicate is ordered in SQL instead of
// relying on planner row order.
func (r *TranslationRepository) FindApproved(ctx context.Context, exactKey, intent, keyContext, languageCode string) (*translation.Translation, error) {
	var t translation.Translation
	query := `
		SELECT id, key, intent, context, language_code, value, status, created_at, updated_at
		FROM translations
		WHERE language_code = $4 AND status = $5
		  AND (key = $1 OR (intent = $2 AND context = $3))
		ORDER BY (key = $1) DESC, created_at ASC
		LIMIT 1`

	err := r.db.DB.GetContext(ctx, &t, query, exactKey, intent, keyContext, languageCode, translation.StatusApproved)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, translation.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approved translation: %w", err)
	}

	return &t, nil
}

// ListKeys returns the distinct raw keys with an approved translation in
// the language, ordered by first insertion so fuzzy matching stays
// deterministic.
func (r *TranslationRepository) ListKeys(ctx context.Context, languageCode string) ([]string, error) {
	var keys []string
	query := `
		SELECT key
		FROM translations
		WHERE language_code = $1 AND status = $2
		GROUP BY key
		ORDER BY MIN(created_at)`

	err := r.db.DB.SelectContext(ctx, &keys, query, languageCode, translation.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list translation keys: %w", err)
	}

	return keys, nil
}

// List retrieves translations with pagination, optionally filtered by language.
func (r *TranslationRepository) List(ctx context.Context, languageCode string, limit, offset int) ([]*translation.Translation, error) {
	var translations []*translation.Translation
	query := `
		SELECT id, key, intent, context, language_code, value, status, created_at, updated_at
		FROM translations
		WHERE ($1 = '' OR language_code = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &translations, query, languageCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	return translations, nil
}

// Update updates an existing translation.
func (r *TranslationRepository) Update(ctx context.Context, t *translation.Translation) error {
	query := `
		UPDATE translations
		SET value = $2, status = $3, updated_at = $4
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, t.ID, t.Value, t.Status, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update translation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return translation.ErrNotFound
	}

	return nil
}

// Upsert inserts or replaces the translation for (key, language_code).
// Used by the contribution workflow when an approval publishes a value.
func (r *TranslationRepository) Upsert(ctx context.Context, t *translation.Translation) error {
	query := `
		INSERT INTO translations (id, key, intent, context, language_code, value, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (key, language_code) DO UPDATE
		SET intent = EXCLUDED.intent,
		    context = EXCLUDED.context,
		    value = EXCLUDED.value,
		    status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.DB.ExecContext(ctx, query,
		t.ID, t.Key, t.Intent, t.Context, t.LanguageCode, t.Value, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert translation: %w", err)
	}

	return nil
}

// Delete deletes a translation by ID.
func (r *TranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM translations WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete translation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return translation.ErrNotFound
	}

	return nil
}

// Count returns the number of translations, optionally filtered by language.
func (r *TranslationRepository) Count(ctx context.Context, languageCode string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM translations WHERE ($1 = '' OR language_code = $1)`

	err := r.db.DB.GetContext(ctx, &count, query, languageCode)
	if err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}

	return count, nil
}
