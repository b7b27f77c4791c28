package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/openlocale/translation-service/internal/core/domain/contribution"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
	"github.com/openlocale/translation-service/internal/core/ports"
	"github.com/openlocale/translation-service/internal/infrastructure/db"
)

// ContributionRepository implements the contribution repository interface on PostgreSQL.
type ContributionRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewContributionRepository creates a new contribution repository.
func NewContributionRepository(database *db.Database, logger *logrus.Logger) ports.ContributionRepository {
	return &ContributionRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a new contribution row.
func (r *ContributionRepository) Create(ctx context.Context, c *contribution.Contribution) error {
	query := `
		INSERT INTO contributions (id, key, intent, context, language_code, value, submitter_email, status, created_at, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.Key, c.Intent, c.Context, c.LanguageCode, c.Value, c.SubmitterEmail, c.Status, c.CreatedAt, c.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to create contribution: %w", err)
	}

	return nil
}

// GetByID retrieves a contribution by ID.
func (r *ContributionRepository) GetByID(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error) {
	var c contribution.Contribution
	query := `
		SELECT id, key, intent, context, language_code, value, submitter_email, status, created_at, reviewed_at
		FROM contributions
		WHERE id = $1`

	err := r.db.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contribution with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get contribution by ID: %w", err)
	}

	return &c, nil
}

// ListByStatus retrieves contributions in a moderation state with pagination.
func (r *ContributionRepository) ListByStatus(ctx context.Context, status translation.Status, limit, offset int) ([]*contribution.Contribution, error) {
	var contributions []*contribution.Contribution
	query := `
		SELECT id, key, intent, context, language_code, value, submitter_email, status, created_at, reviewed_at
		FROM contributions
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	err := r.db.DB.SelectContext(ctx, &contributions, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	return contributions, nil
}

// Update persists moderation state changes.
func (r *ContributionRepository) Update(ctx context.Context, c *contribution.Contribution) error {
	query := `
		UPDATE contributions
		SET value = $2, status = $3, reviewed_at = $4
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, c.ID, c.Value, c.Status, c.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to update contribution: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contribution with ID %s not found", c.ID)
	}

	return nil
}
