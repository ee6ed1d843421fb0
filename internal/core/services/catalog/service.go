package catalog

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/domain"
)

// ICatalogService defines the read-side interface for problems and languages
type ICatalogService interface {
	// ListProblems retrieves problems without their test cases
	ListProblems(ctx context.Context, limit int) ([]*domain.Problem, error)

	// GetProblem retrieves a problem; hidden test cases are stripped
	GetProblem(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error)

	// GetLanguages retrieves the languages open for submission
	GetLanguages(ctx context.Context) ([]string, error)

	// GetSolvedProblems retrieves the ids of problems the user has solved
	GetSolvedProblems(ctx context.Context, userID string) ([]uuid.UUID, error)
}
