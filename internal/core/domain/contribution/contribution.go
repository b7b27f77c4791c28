package contribution

import (
	"time"

	"github.com/google/uuid"

	"github.com/openlocale/translation-service/internal/core/domain/translation"
)

// Contribution is a community-submitted candidate translation awaiting
// moderation. Approving one publishes an approved translation and
// invalidates the corresponding cache entry.
type Contribution struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	Key            string             `json:"key" db:"key"`
	Intent         string             `json:"intent" db:"intent"`
	Context        string             `json:"context" db:"context"`
	LanguageCode   string             `json:"language_code" db:"language_code"`
	Value          string             `json:"value" db:"value"`
	SubmitterEmail string             `json:"submitter_email" db:"submitter_email"`
	Status         translation.Status `json:"status" db:"status"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	ReviewedAt     *time.Time         `json:"reviewed_at,omitempty" db:"reviewed_at"`
}

// SubmitContributionRequest represents a new community submission.
type SubmitContributionRequest struct {
	Key            string `json:"key" validate:"required"`
	LanguageCode   string `json:"language_code" validate:"required"`
	Value          string `json:"value" validate:"required"`
	SubmitterEmail string `json:"submitter_email"`
}
