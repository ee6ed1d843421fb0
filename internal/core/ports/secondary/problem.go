package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/domain"
)

type ProblemRepository interface {
	// GetByID retrieves a problem with its test cases, nil if not found
	GetByID(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error)

	// List retrieves problems without their test cases
	List(ctx context.Context, limit int) ([]*domain.Problem, error)
}
