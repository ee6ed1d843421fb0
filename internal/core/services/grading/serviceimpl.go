package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/static/errs"
)

var _ IGradingService = (*GradingService)(nil)

// GradingService orchestrates the dispatch -> poll -> aggregate pipeline for
// run and submit requests. Each request grades independently; there is no
// shared state across concurrent pipelines.
type GradingService struct {
	dispatcher  *Dispatcher
	poller      *Poller
	problems    secondary.ProblemRepository
	submissions secondary.SubmissionRepository
	users       secondary.UserRepository
	cache       secondary.VerdictCache
	cfg         *config.GradingConfig
	logger      primary.Logger
}

// NewGradingService creates a new grading service
func NewGradingService(
	dispatcher *Dispatcher,
	poller *Poller,
	problems secondary.ProblemRepository,
	submissions secondary.SubmissionRepository,
	users secondary.UserRepository,
	cache secondary.VerdictCache,
	cfg *config.GradingConfig,
	logger primary.Logger,
) *GradingService {
	return &GradingService{
		dispatcher:  dispatcher,
		poller:      poller,
		problems:    problems,
		submissions: submissions,
		users:       users,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run grades code against the problem's visible test cases only
func (s *GradingService) Run(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.GradedSubmission, error) {
	return s.grade(ctx, userID, problemID, code, language, domain.KindRun)
}

// Submit grades code against visible plus hidden test cases
func (s *GradingService) Submit(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.GradedSubmission, error) {
	return s.grade(ctx, userID, problemID, code, language, domain.KindSubmit)
}

func (s *GradingService) grade(ctx context.Context, userID string, problemID uuid.UUID, code, language string, kind domain.SubmissionKind) (*domain.GradedSubmission, error) {
	// Input errors are rejected before a submission row exists and before
	// anything reaches the judge.
	if strings.TrimSpace(code) == "" {
		return nil, errs.ErrEmptySourceCode
	}
	if _, ok := domain.JudgeLanguageID(language); !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	problem, err := s.problems.GetByID(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if problem == nil {
		return nil, errs.ErrProblemNotFound
	}

	// Hidden cases are appended after visible ones; index >= visibleCount
	// identifies a hidden case end to end.
	visibleCount := len(problem.VisibleTestCases)
	testCases := make([]domain.TestCase, 0, visibleCount+len(problem.HiddenTestCases))
	testCases = append(testCases, problem.VisibleTestCases...)
	if kind == domain.KindSubmit {
		testCases = append(testCases, problem.HiddenTestCases...)
	}
	if len(testCases) == 0 {
		return nil, errs.ErrNoTestCases
	}

	submission := domain.NewSubmission(userID, problemID, code, language, kind, len(testCases))
	if err := s.submissions.Create(ctx, submission); err != nil {
		s.logger.Error("Failed to create submission", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info("Grading submission",
		"submissionId", submission.ID,
		"kind", kind,
		"language", language,
		"testCases", len(testCases))

	tokens, err := s.dispatcher.Dispatch(ctx, testCases, code, language)
	if err != nil {
		s.failSubmission(ctx, submission, err)
		return nil, err
	}

	outcomes, err := s.poller.Poll(ctx, tokens)
	if err != nil {
		s.failSubmission(ctx, submission, err)
		return nil, err
	}

	verdict, results := Aggregate(outcomes, testCases, visibleCount)

	submission.ApplyVerdict(&verdict)
	if err := s.submissions.UpdateVerdict(ctx, submission); err != nil {
		s.logger.Error("Failed to persist verdict", "submissionId", submission.ID, "error", err)
		return nil, fmt.Errorf("failed to persist verdict: %w", err)
	}

	if verdict.OverallAccepted && (kind == domain.KindSubmit || s.cfg.MarkSolvedOnRun) {
		s.markSolved(ctx, userID, problemID)
	}

	// Best effort: a cache failure never fails a graded submission.
	if err := s.cache.PutVerdict(ctx, submission.ID, &verdict); err != nil {
		s.logger.Warn("Failed to cache verdict", "submissionId", submission.ID, "error", err)
	}

	s.logger.Info("Submission graded",
		"submissionId", submission.ID,
		"status", verdict.Status,
		"passed", verdict.TestCasesPassed,
		"total", verdict.TotalTestCases)

	return &domain.GradedSubmission{
		SubmissionID: submission.ID,
		Verdict:      verdict,
		Results:      results,
	}, nil
}

// failSubmission records a grading-infrastructure failure on the submission
// row with a status distinct from any correctness verdict.
func (s *GradingService) failSubmission(ctx context.Context, submission *domain.Submission, cause error) {
	status := domain.StatusGradingFailed
	if errors.Is(cause, errs.ErrGradingTimedOut) {
		status = domain.StatusGradingTimedOut
	}

	submission.MarkFailed(status, cause.Error())
	if err := s.submissions.UpdateVerdict(ctx, submission); err != nil {
		s.logger.Error("Failed to record grading failure", "submissionId", submission.ID, "error", err)
	}
}

// markSolved appends the problem to the user's solved set at most once.
func (s *GradingService) markSolved(ctx context.Context, userID string, problemID uuid.UUID) {
	cached, err := s.cache.IsSolvedCached(ctx, userID, problemID)
	if err == nil && cached {
		return
	}

	// Cache miss only means the cache doesn't know; the storage layer decides.
	if solved, err := s.users.HasSolved(ctx, userID, problemID); err == nil && solved {
		if err := s.cache.MarkSolved(ctx, userID, problemID); err != nil {
			s.logger.Warn("Failed to cache solved state", "userId", userID, "problemId", problemID, "error", err)
		}
		return
	}

	if err := s.users.AddSolvedProblem(ctx, userID, problemID); err != nil {
		s.logger.Error("Failed to update solved set", "userId", userID, "problemId", problemID, "error", err)
		return
	}

	if err := s.cache.MarkSolved(ctx, userID, problemID); err != nil {
		s.logger.Warn("Failed to cache solved state", "userId", userID, "problemId", problemID, "error", err)
	}
}

// GetSubmission retrieves a submission owned by the caller
func (s *GradingService) GetSubmission(ctx context.Context, userID string, submissionID uuid.UUID) (*domain.Submission, error) {
	submission, err := s.submissions.Get(ctx, submissionID)
	if err != nil {
		s.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil || submission.UserID != userID {
		return nil, errs.ErrSubmissionNotFound
	}
	return submission, nil
}

// ListSubmissions retrieves the caller's submissions, newest first
func (s *GradingService) ListSubmissions(ctx context.Context, userID string, filter secondary.SubmissionFilter) ([]*domain.Submission, error) {
	submissions, err := s.submissions.ListByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
