package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/static/errs"
)

var _ ICatalogService = (*CatalogService)(nil)

// CatalogService serves the browse side of the platform: problem listings
// and the language table.
type CatalogService struct {
	problems    secondary.ProblemRepository
	users       secondary.UserRepository
	languageCfg secondary.LanguageConfigRepository
	logger      primary.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	problems secondary.ProblemRepository,
	users secondary.UserRepository,
	languageCfg secondary.LanguageConfigRepository,
	logger primary.Logger,
) *CatalogService {
	return &CatalogService{
		problems:    problems,
		users:       users,
		languageCfg: languageCfg,
		logger:      logger,
	}
}

// ListProblems retrieves problems without their test cases
func (s *CatalogService) ListProblems(ctx context.Context, limit int) ([]*domain.Problem, error) {
	problems, err := s.problems.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list problems", "error", err)
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

// GetProblem retrieves a problem with hidden test cases stripped. Hidden
// cases never leave the backend.
func (s *CatalogService) GetProblem(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	problem, err := s.problems.GetByID(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if problem == nil {
		return nil, errs.ErrProblemNotFound
	}

	problem.HiddenTestCases = nil
	return problem, nil
}

// GetLanguages retrieves active languages that the judge language table also
// knows about.
func (s *CatalogService) GetLanguages(ctx context.Context) ([]string, error) {
	active, err := s.languageCfg.GetActiveLanguages(ctx)
	if err != nil {
		s.logger.Error("Failed to get active languages", "error", err)
		return nil, fmt.Errorf("failed to get active languages: %w", err)
	}

	// An unseeded language table means every judge-known language is open.
	if len(active) == 0 {
		return domain.SupportedLanguages(), nil
	}

	languages := make([]string, 0, len(active))
	for _, name := range active {
		if _, ok := domain.JudgeLanguageID(name); ok {
			languages = append(languages, name)
		}
	}
	return languages, nil
}

// GetSolvedProblems retrieves the ids of problems the user has solved
func (s *CatalogService) GetSolvedProblems(ctx context.Context, userID string) ([]uuid.UUID, error) {
	solved, err := s.users.GetSolvedProblems(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get solved problems", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to get solved problems: %w", err)
	}
	return solved, nil
}
