// package problemrepository contains the PostgreSQL problem reader
package problemrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository implements the ProblemRepository interface with PostgreSQL
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewProblemRepository creates a new PostgreSQL problem repository
func NewProblemRepository(db *sqlx.DB, logger primary.Logger) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a problem with both test-case sequences from PostgreSQL
func (r *ProblemRepository) GetByID(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	query := `
		SELECT id, slug, title, difficulty, visible_test_cases, hidden_test_cases, created_at
		FROM problems
		WHERE id = $1
	`

	var problem domain.Problem
	var visibleJSON, hiddenJSON []byte

	err := r.db.QueryRowContext(ctx, query, problemID).Scan(
		&problem.ID,
		&problem.Slug,
		&problem.Title,
		&problem.Difficulty,
		&visibleJSON,
		&hiddenJSON,
		&problem.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	// Test-case sequences are stored as ordered JSON arrays; order is
	// load-bearing for the grading pipeline.
	if err := json.Unmarshal(visibleJSON, &problem.VisibleTestCases); err != nil {
		r.logger.Error("Failed to unmarshal visible test cases", "error", err)
		return nil, fmt.Errorf("failed to unmarshal visible test cases: %w", err)
	}
	if err := json.Unmarshal(hiddenJSON, &problem.HiddenTestCases); err != nil {
		r.logger.Error("Failed to unmarshal hidden test cases", "error", err)
		return nil, fmt.Errorf("failed to unmarshal hidden test cases: %w", err)
	}

	return &problem, nil
}

// List retrieves problems without their test cases from PostgreSQL
func (r *ProblemRepository) List(ctx context.Context, limit int) ([]*domain.Problem, error) {
	query := `
		SELECT id, slug, title, difficulty, created_at
		FROM problems
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list problems", "error", err)
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	problems := make([]*domain.Problem, 0)
	for rows.Next() {
		var problem domain.Problem
		if err := rows.Scan(
			&problem.ID,
			&problem.Slug,
			&problem.Title,
			&problem.Difficulty,
			&problem.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan problem row", "error", err)
			return nil, fmt.Errorf("failed to scan problem row: %w", err)
		}
		problems = append(problems, &problem)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating problem rows", "error", err)
		return nil, fmt.Errorf("error iterating problem rows: %w", err)
	}

	return problems, nil
}
