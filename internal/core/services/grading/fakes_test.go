package grading

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// fakeJudgeClient simulates the external judge deterministically: SubmitBatch
// hands out sequential tokens, GetBatchResults replays scripted rounds (the
// last round repeats once the script runs out).
type fakeJudgeClient struct {
	mu sync.Mutex

	submitErr error
	resultErr error
	rounds    [][]domain.ExecutionOutcome

	submitCalls  int
	resultCalls  int
	lastRequests []domain.ExecutionRequest
}

func (f *fakeJudgeClient) SubmitBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitCalls++
	if f.submitErr != nil {
		return nil, f.submitErr
	}

	f.lastRequests = append([]domain.ExecutionRequest(nil), requests...)
	tokens := make([]domain.ExecutionToken, len(requests))
	for i := range requests {
		tokens[i] = domain.ExecutionToken(uuid.New().String())
	}
	return tokens, nil
}

func (f *fakeJudgeClient) GetBatchResults(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resultCalls++
	if f.resultErr != nil {
		return nil, f.resultErr
	}

	idx := f.resultCalls - 1
	if idx >= len(f.rounds) {
		idx = len(f.rounds) - 1
	}
	return append([]domain.ExecutionOutcome(nil), f.rounds[idx]...), nil
}

func acceptedOutcome(stdout string, timeSec float64, memoryKB int) domain.ExecutionOutcome {
	return domain.ExecutionOutcome{
		StatusID:          domain.JudgeStatusAccepted,
		StatusDescription: "Accepted",
		Stdout:            stdout,
		Time:              timeSec,
		Memory:            memoryKB,
	}
}

func processingOutcome() domain.ExecutionOutcome {
	return domain.ExecutionOutcome{
		StatusID:          domain.JudgeStatusProcessing,
		StatusDescription: "Processing",
	}
}

type memProblemRepo struct {
	problems map[uuid.UUID]*domain.Problem
}

func newMemProblemRepo(problems ...*domain.Problem) *memProblemRepo {
	repo := &memProblemRepo{problems: make(map[uuid.UUID]*domain.Problem)}
	for _, p := range problems {
		repo.problems[p.ID] = p
	}
	return repo
}

func (r *memProblemRepo) GetByID(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	problem, ok := r.problems[problemID]
	if !ok {
		return nil, nil
	}
	clone := *problem
	return &clone, nil
}

func (r *memProblemRepo) List(ctx context.Context, limit int) ([]*domain.Problem, error) {
	problems := make([]*domain.Problem, 0, len(r.problems))
	for _, p := range r.problems {
		clone := *p
		problems = append(problems, &clone)
	}
	return problems, nil
}

type memSubmissionRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.Submission
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{rows: make(map[uuid.UUID]*domain.Submission)}
}

func (r *memSubmissionRepo) Create(ctx context.Context, submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *submission
	r.rows[submission.ID] = &clone
	return nil
}

func (r *memSubmissionRepo) UpdateVerdict(ctx context.Context, submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rows[submission.ID]
	if !ok {
		return errors.New("submission not found")
	}
	// Mirrors the SQL guard: only pending rows move to a terminal state.
	if existing.Status != domain.StatusPending {
		return nil
	}

	clone := *submission
	r.rows[submission.ID] = &clone
	return nil
}

func (r *memSubmissionRepo) Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	submission, ok := r.rows[submissionID]
	if !ok {
		return nil, nil
	}
	clone := *submission
	return &clone, nil
}

func (r *memSubmissionRepo) ListByUser(ctx context.Context, userID string, filter secondary.SubmissionFilter) ([]*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	submissions := make([]*domain.Submission, 0)
	for _, submission := range r.rows {
		if submission.UserID != userID {
			continue
		}
		if filter.ProblemID != nil && submission.ProblemID != *filter.ProblemID {
			continue
		}
		if filter.Kind != nil && submission.Kind != *filter.Kind {
			continue
		}
		clone := *submission
		submissions = append(submissions, &clone)
	}
	return submissions, nil
}

func (r *memSubmissionRepo) MarkStalePendingFailed(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var swept int64
	for _, submission := range r.rows {
		if submission.Status == domain.StatusPending && submission.CreatedAt.Before(cutoff) {
			submission.MarkFailed(domain.StatusGradingFailed, "grading abandoned: submission was stuck in pending")
			swept++
		}
	}
	return swept, nil
}

type memUserRepo struct {
	mu     sync.Mutex
	solved map[string][]uuid.UUID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{solved: make(map[string][]uuid.UUID)}
}

func (r *memUserRepo) AddSolvedProblem(ctx context.Context, userID string, problemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.solved[userID] {
		if id == problemID {
			return nil
		}
	}
	r.solved[userID] = append(r.solved[userID], problemID)
	return nil
}

func (r *memUserRepo) HasSolved(ctx context.Context, userID string, problemID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.solved[userID] {
		if id == problemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) GetSolvedProblems(ctx context.Context, userID string) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]uuid.UUID(nil), r.solved[userID]...), nil
}

type memVerdictCache struct {
	mu       sync.Mutex
	verdicts map[uuid.UUID]*domain.SubmissionVerdict
	solved   map[string]map[uuid.UUID]bool
}

func newMemVerdictCache() *memVerdictCache {
	return &memVerdictCache{
		verdicts: make(map[uuid.UUID]*domain.SubmissionVerdict),
		solved:   make(map[string]map[uuid.UUID]bool),
	}
}

func (c *memVerdictCache) PutVerdict(ctx context.Context, submissionID uuid.UUID, verdict *domain.SubmissionVerdict) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	clone := *verdict
	c.verdicts[submissionID] = &clone
	return nil
}

func (c *memVerdictCache) GetVerdict(ctx context.Context, submissionID uuid.UUID) (*domain.SubmissionVerdict, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	verdict, ok := c.verdicts[submissionID]
	if !ok {
		return nil, nil
	}
	clone := *verdict
	return &clone, nil
}

func (c *memVerdictCache) MarkSolved(ctx context.Context, userID string, problemID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.solved[userID] == nil {
		c.solved[userID] = make(map[uuid.UUID]bool)
	}
	c.solved[userID][problemID] = true
	return nil
}

func (c *memVerdictCache) IsSolvedCached(ctx context.Context, userID string, problemID uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.solved[userID][problemID], nil
}

type fakeLanguageConfigRepo struct {
	inactive map[string]bool
}

func (r *fakeLanguageConfigRepo) GetLanguageConfig(ctx context.Context, language string) (*domain.LanguageConfig, error) {
	return &domain.LanguageConfig{
		Language:        language,
		CPUTimeLimitSec: 2,
		MemoryLimitKB:   128 * 1024,
		Active:          !r.inactive[language],
	}, nil
}

func (r *fakeLanguageConfigRepo) GetActiveLanguages(ctx context.Context) ([]string, error) {
	return []string{"python", "cpp", "go"}, nil
}
