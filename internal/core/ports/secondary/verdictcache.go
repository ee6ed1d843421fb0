package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/domain"
)

// VerdictCache is a best-effort read-through cache for terminal verdicts and
// solved-set membership. Cache failures never fail a grading pipeline.
type VerdictCache interface {
	PutVerdict(ctx context.Context, submissionID uuid.UUID, verdict *domain.SubmissionVerdict) error
	GetVerdict(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionVerdict, error)

	MarkSolved(ctx context.Context, userID string, problemID uuid.UUID) error
	IsSolvedCached(ctx context.Context, userID string, problemID uuid.UUID) (bool, error)
}
