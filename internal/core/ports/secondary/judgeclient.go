package secondary

import (
	"context"

	"gitlab.com/algoforge.net/internal/domain"
)

// JudgeClient talks to the external code-execution service. Both calls
// preserve order: token i / outcome i corresponds to request i / token i.
type JudgeClient interface {
	// SubmitBatch submits one execution per test case as a single batch and
	// returns one tracking token per execution.
	SubmitBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error)

	// GetBatchResults retrieves the current outcome for every token. Outcomes
	// may still be in a non-terminal state; callers poll until terminal.
	GetBatchResults(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionOutcome, error)
}
