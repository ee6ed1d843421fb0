package userrepository

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	querybuilder "gitlab.com/algoforge.net/internal/utils"
)

var _ secondary.UserRepository = &userRepo{}

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

func New(db *sqlx.DB, logger primary.Logger, schema string) secondary.UserRepository {
	if env := os.Getenv("DB_SCHEMA"); env != "" {
		schema = env
	}
	return &userRepo{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// AddSolvedProblem appends a problem to the user's solved set. The primary
// key on (user_id, problem_id) makes the append idempotent even when two
// terminal submissions for the same user/problem race.
func (u *userRepo) AddSolvedProblem(ctx context.Context, userID string, problemID uuid.UUID) error {
	solvedTbl := domain.GetSolvedProblemTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(solvedTbl.UserID, solvedTbl.ProblemID).
		Into(solvedTbl.GetTableName()).
		Values(userID, problemID).
		OnConflict(solvedTbl.UserID, solvedTbl.ProblemID).
		DoNothing().
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := u.db.ExecContext(ctx, query, args...); err != nil {
		u.logger.Error("Failed to add solved problem", "userId", userID, "problemId", problemID, "error", err)
		return fmt.Errorf("failed to add solved problem: %w", err)
	}

	return nil
}

// HasSolved reports whether the problem is in the user's solved set
func (u *userRepo) HasSolved(ctx context.Context, userID string, problemID uuid.UUID) (bool, error) {
	solvedTbl := domain.GetSolvedProblemTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select("COUNT(1)").
		From(solvedTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", solvedTbl.UserID), userID).
		And(fmt.Sprintf("%s = ?", solvedTbl.ProblemID), problemID).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var count int
	if err := u.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("failed to check solved state: %w", err)
	}

	return count > 0, nil
}

// GetSolvedProblems retrieves the user's solved problem ids, oldest first
func (u *userRepo) GetSolvedProblems(ctx context.Context, userID string) ([]uuid.UUID, error) {
	solvedTbl := domain.GetSolvedProblemTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(solvedTbl.ProblemID).
		From(solvedTbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", solvedTbl.UserID), userID).
		OrderBy(solvedTbl.SolvedAt, true).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var problemIDs []uuid.UUID
	if err := u.db.SelectContext(ctx, &problemIDs, query, args...); err != nil {
		u.logger.Error("Failed to get solved problems", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get solved problems: %w", err)
	}

	return problemIDs, nil
}
