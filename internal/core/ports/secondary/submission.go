package secondary

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/domain"
)

// SubmissionFilter narrows ListByUser results.
type SubmissionFilter struct {
	ProblemID *uuid.UUID
	Kind      *domain.SubmissionKind
	Limit     int
}

type SubmissionRepository interface {
	// Create persists a new submission in Pending state
	Create(ctx context.Context, submission *domain.Submission) error

	// UpdateVerdict writes the terminal state of a submission exactly once
	UpdateVerdict(ctx context.Context, submission *domain.Submission) error

	// Get retrieves a submission by ID, nil if not found
	Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	// ListByUser retrieves a user's submissions, newest first
	ListByUser(ctx context.Context, userID string, filter SubmissionFilter) ([]*domain.Submission, error)

	// MarkStalePendingFailed fails submissions stuck in Pending since before
	// the cutoff and returns how many rows were touched
	MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error)
}
