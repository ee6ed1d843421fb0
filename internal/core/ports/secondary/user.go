package secondary

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	// AddSolvedProblem appends a problem to the user's solved set. Idempotent:
	// re-adding an already-solved problem is a no-op.
	AddSolvedProblem(ctx context.Context, userID string, problemID uuid.UUID) error

	// HasSolved reports whether the problem is already in the user's solved set
	HasSolved(ctx context.Context, userID string, problemID uuid.UUID) (bool, error)

	// GetSolvedProblems retrieves the user's solved problem ids
	GetSolvedProblems(ctx context.Context, userID string) ([]uuid.UUID, error)
}
