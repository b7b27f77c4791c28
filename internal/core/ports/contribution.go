package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/openlocale/translation-service/internal/core/domain/contribution"
	"github.com/openlocale/translation-service/internal/core/domain/translation"
)

// ContributionRepository stores community submissions and their moderation
// state.
type ContributionRepository interface {
	Create(ctx context.Context, c *contribution.Contribution) error
	GetByID(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error)
	ListByStatus(ctx context.Context, status translation.Status, limit, offset int) ([]*contribution.Contribution, error)
	Update(ctx context.Context, c *contribution.Contribution) error
}

// ContributionService runs the moderation workflow. Approving a
// contribution publishes an approved translation and must invalidate the
// cached entry for its (key, language) so stale values are never served.
type ContributionService interface {
	Submit(ctx context.Context, req *contribution.SubmitContributionRequest) (*contribution.Contribution, error)
	Approve(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error)
	Reject(ctx context.Context, id uuid.UUID) (*contribution.Contribution, error)
	ListPending(ctx context.Context, limit, offset int) ([]*contribution.Contribution, error)
}

// ContributionNotifier tells a submitter about the outcome of moderation.
// Delivery is best-effort; failures never abort the workflow.
type ContributionNotifier interface {
	NotifyReviewed(ctx context.Context, c *contribution.Contribution) error
}
