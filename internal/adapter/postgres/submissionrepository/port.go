// package submissionrepository contains the PostgreSQL submission store
package submissionrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	querybuilder "gitlab.com/algoforge.net/internal/utils"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with PostgreSQL
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewSubmissionRepository creates a new PostgreSQL submission repository
func NewSubmissionRepository(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new submission in Pending state
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `
		INSERT INTO submissions (
			id, user_id, problem_id, code, language, kind, status,
			test_cases_passed, total_test_cases, runtime, memory,
			error_message, created_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.UserID,
		submission.ProblemID,
		submission.Code,
		submission.Language,
		submission.Kind,
		submission.Status,
		submission.TestCasesPassed,
		submission.TotalTestCases,
		submission.Runtime,
		submission.Memory,
		submission.ErrorMessage,
		submission.CreatedAt,
		submission.CompletedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create submission", "error", err)
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// UpdateVerdict writes the terminal state of a submission. Only Pending rows
// are updated; a terminal submission is never re-entered.
func (r *SubmissionRepository) UpdateVerdict(ctx context.Context, submission *domain.Submission) error {
	query := `
		UPDATE submissions SET
			status = $1,
			test_cases_passed = $2,
			total_test_cases = $3,
			runtime = $4,
			memory = $5,
			error_message = $6,
			completed_at = $7
		WHERE id = $8 AND status = $9
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		submission.Status,
		submission.TestCasesPassed,
		submission.TotalTestCases,
		submission.Runtime,
		submission.Memory,
		submission.ErrorMessage,
		submission.CompletedAt,
		submission.ID,
		domain.StatusPending,
	)

	if err != nil {
		r.logger.Error("Failed to update submission verdict", "error", err)
		return fmt.Errorf("failed to update submission verdict: %w", err)
	}

	return nil
}

// Get retrieves a submission from PostgreSQL by ID
func (r *SubmissionRepository) Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, user_id, problem_id, code, language, kind, status,
			   test_cases_passed, total_test_cases, runtime, memory,
			   error_message, created_at, completed_at
		FROM submissions
		WHERE id = $1
	`

	var submission domain.Submission
	var completedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, submissionID).Scan(
		&submission.ID,
		&submission.UserID,
		&submission.ProblemID,
		&submission.Code,
		&submission.Language,
		&submission.Kind,
		&submission.Status,
		&submission.TestCasesPassed,
		&submission.TotalTestCases,
		&submission.Runtime,
		&submission.Memory,
		&submission.ErrorMessage,
		&submission.CreatedAt,
		&completedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if completedAt.Valid {
		submission.CompletedAt = &completedAt.Time
	}

	return &submission, nil
}

// ListByUser retrieves a user's submissions, newest first, with optional
// problem/kind filters
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID string, filter secondary.SubmissionFilter) ([]*domain.Submission, error) {
	tbl := domain.GetSubmissionTable()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	qb := querybuilder.NewQueryBuilder("").
		Select(
			tbl.ID, tbl.UserID, tbl.ProblemID, tbl.Code, tbl.Language,
			tbl.Kind, tbl.Status, tbl.TestCasesPassed, tbl.TotalTestCases,
			tbl.Runtime, tbl.Memory, tbl.ErrorMessage, tbl.CreatedAt, tbl.CompletedAt,
		).
		From(tbl.TableName()).
		Where(fmt.Sprintf("%s = ?", tbl.UserID), userID)

	if filter.ProblemID != nil {
		qb = qb.And(fmt.Sprintf("%s = ?", tbl.ProblemID), *filter.ProblemID)
	}
	if filter.Kind != nil {
		qb = qb.And(fmt.Sprintf("%s = ?", tbl.Kind), *filter.Kind)
	}

	query, args := qb.OrderBy(tbl.CreatedAt, false).Limit(limit).Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)
	for rows.Next() {
		var submission domain.Submission
		var completedAt sql.NullTime

		if err := rows.Scan(
			&submission.ID,
			&submission.UserID,
			&submission.ProblemID,
			&submission.Code,
			&submission.Language,
			&submission.Kind,
			&submission.Status,
			&submission.TestCasesPassed,
			&submission.TotalTestCases,
			&submission.Runtime,
			&submission.Memory,
			&submission.ErrorMessage,
			&submission.CreatedAt,
			&completedAt,
		); err != nil {
			r.logger.Error("Failed to scan submission row", "error", err)
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}

		if completedAt.Valid {
			submission.CompletedAt = &completedAt.Time
		}

		submissions = append(submissions, &submission)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating submission rows", "error", err)
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}

// MarkStalePendingFailed fails submissions stuck in Pending since before the
// cutoff, so a crash mid-pipeline cannot strand rows forever
func (r *SubmissionRepository) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE submissions SET
			status = $1,
			error_message = $2,
			completed_at = $3
		WHERE status = $4 AND created_at < $5
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		domain.StatusGradingFailed,
		"grading abandoned: submission was stuck in pending",
		time.Now(),
		domain.StatusPending,
		cutoff,
	)

	if err != nil {
		r.logger.Error("Failed to mark stale submissions", "error", err)
		return 0, fmt.Errorf("failed to mark stale submissions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}
