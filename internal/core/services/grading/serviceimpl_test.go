package grading

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/static/errs"
)

type serviceFixture struct {
	service     *GradingService
	judge       *fakeJudgeClient
	problems    *memProblemRepo
	submissions *memSubmissionRepo
	users       *memUserRepo
	cache       *memVerdictCache
	problem     *domain.Problem
}

func newServiceFixture(t *testing.T, judge *fakeJudgeClient, gradingCfg *config.GradingConfig) *serviceFixture {
	t.Helper()

	problem := &domain.Problem{
		ID:         uuid.New(),
		Slug:       "two-sum",
		Title:      "Two Sum",
		Difficulty: "easy",
		VisibleTestCases: []domain.TestCase{
			{Input: "1 2", ExpectedOutput: "3"},
			{Input: "4 5", ExpectedOutput: "9"},
		},
		HiddenTestCases: []domain.TestCase{
			{Input: "100 200", ExpectedOutput: "300"},
		},
		CreatedAt: time.Now(),
	}

	problems := newMemProblemRepo(problem)
	submissions := newMemSubmissionRepo()
	users := newMemUserRepo()
	cache := newMemVerdictCache()

	if gradingCfg == nil {
		gradingCfg = &config.GradingConfig{}
	}

	dispatcher := NewDispatcher(judge, &fakeLanguageConfigRepo{}, nopLogger{})
	poller := NewPoller(judge, testJudgeConfig(5), nopLogger{})
	service := NewGradingService(dispatcher, poller, problems, submissions, users, cache, gradingCfg, nopLogger{})

	return &serviceFixture{
		service:     service,
		judge:       judge,
		problems:    problems,
		submissions: submissions,
		users:       users,
		cache:       cache,
		problem:     problem,
	}
}

func allAcceptedRounds(outputs ...string) [][]domain.ExecutionOutcome {
	round := make([]domain.ExecutionOutcome, 0, len(outputs))
	for _, out := range outputs {
		round = append(round, acceptedOutcome(out, 0.01, 100))
	}
	return [][]domain.ExecutionOutcome{round}
}

func TestRunGradesVisibleCasesOnly(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Run(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.Equal(t, 2, graded.Verdict.TotalTestCases)
	require.Len(t, judge.lastRequests, 2)
	assert.Equal(t, "1 2", judge.lastRequests[0].Stdin)
	assert.Equal(t, "4 5", judge.lastRequests[1].Stdin)
}

func TestSubmitGradesVisiblePlusHiddenCases(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.Equal(t, 3, graded.Verdict.TotalTestCases)
	assert.True(t, graded.Verdict.OverallAccepted)
	require.Len(t, graded.Results, 3)
	assert.False(t, graded.Results[0].IsHidden)
	assert.False(t, graded.Results[1].IsHidden)
	assert.True(t, graded.Results[2].IsHidden)
}

func TestGradePersistsTerminalSubmission(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)

	stored, err := fx.submissions.Get(context.Background(), graded.SubmissionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, domain.StatusAccepted, stored.Status)
	assert.Equal(t, 3, stored.TestCasesPassed)
	assert.Equal(t, domain.KindSubmit, stored.Kind)
	assert.NotNil(t, stored.CompletedAt)
}

func TestGradeInputErrorsCreateNoSubmission(t *testing.T) {
	judge := &fakeJudgeClient{}
	fx := newServiceFixture(t, judge, nil)
	ctx := context.Background()

	_, err := fx.service.Submit(ctx, "user-1", fx.problem.ID, "  ", "python")
	assert.ErrorIs(t, err, errs.ErrEmptySourceCode)

	_, err = fx.service.Submit(ctx, "user-1", fx.problem.ID, "code", "cobol")
	assert.ErrorIs(t, err, errs.ErrUnsupportedLanguage)

	_, err = fx.service.Submit(ctx, "user-1", uuid.New(), "code", "python")
	assert.ErrorIs(t, err, errs.ErrProblemNotFound)

	assert.Zero(t, judge.submitCalls)
	assert.Empty(t, fx.submissions.rows)
}

func TestGradeJudgeDownMarksGradingFailedNotWrongAnswer(t *testing.T) {
	judge := &fakeJudgeClient{submitErr: errors.New("connection refused")}
	fx := newServiceFixture(t, judge, nil)

	_, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")

	assert.ErrorIs(t, err, errs.ErrJudgeUnavailable)
	require.Len(t, fx.submissions.rows, 1)
	for _, stored := range fx.submissions.rows {
		assert.Equal(t, domain.StatusGradingFailed, stored.Status)
		assert.NotEqual(t, domain.StatusWrongAnswer, stored.Status)
		assert.NotNil(t, stored.CompletedAt)
	}
	assert.Empty(t, fx.users.solved["user-1"])
}

func TestGradePollTimeoutMarksGradingTimedOut(t *testing.T) {
	judge := &fakeJudgeClient{
		rounds: [][]domain.ExecutionOutcome{
			{processingOutcome(), processingOutcome(), processingOutcome()},
		},
	}
	fx := newServiceFixture(t, judge, nil)

	_, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")

	assert.ErrorIs(t, err, errs.ErrGradingTimedOut)
	require.Len(t, fx.submissions.rows, 1)
	for _, stored := range fx.submissions.rows {
		assert.Equal(t, domain.StatusGradingTimedOut, stored.Status)
	}
}

func TestSubmitAcceptedMarksSolved(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)

	_, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fx.problem.ID}, fx.users.solved["user-1"])

	solved, err := fx.cache.IsSolvedCached(context.Background(), "user-1", fx.problem.ID)
	require.NoError(t, err)
	assert.True(t, solved)
}

func TestSubmitRejectedDoesNotMarkSolved(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "999")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.False(t, graded.Verdict.OverallAccepted)
	assert.Equal(t, domain.StatusWrongAnswer, graded.Verdict.Status)
	assert.Empty(t, fx.users.solved["user-1"])
}

func TestSubmitAcceptedTwiceSolvedSetStaysSingle(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)
	ctx := context.Background()

	_, err := fx.service.Submit(ctx, "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)
	_, err = fx.service.Submit(ctx, "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{fx.problem.ID}, fx.users.solved["user-1"])
	assert.Len(t, fx.submissions.rows, 2, "each submit is its own row")
}

func TestRunAcceptedDoesNotMarkSolvedByDefault(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Run(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.True(t, graded.Verdict.OverallAccepted)
	assert.Empty(t, fx.users.solved["user-1"])
}

func TestRunAcceptedMarksSolvedWhenConfigured(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9")}
	fx := newServiceFixture(t, judge, &config.GradingConfig{MarkSolvedOnRun: true})

	_, err := fx.service.Run(context.Background(), "user-1", fx.problem.ID, "code", "python")

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{fx.problem.ID}, fx.users.solved["user-1"])
}

func TestGradeCachesVerdict(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)

	graded, err := fx.service.Submit(context.Background(), "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)

	cached, err := fx.cache.GetVerdict(context.Background(), graded.SubmissionID)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, graded.Verdict, *cached)
}

func TestGetSubmissionEnforcesOwnership(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)
	ctx := context.Background()

	graded, err := fx.service.Submit(ctx, "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)

	submission, err := fx.service.GetSubmission(ctx, "user-1", graded.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, graded.SubmissionID, submission.ID)

	_, err = fx.service.GetSubmission(ctx, "user-2", graded.SubmissionID)
	assert.ErrorIs(t, err, errs.ErrSubmissionNotFound)

	_, err = fx.service.GetSubmission(ctx, "user-1", uuid.New())
	assert.ErrorIs(t, err, errs.ErrSubmissionNotFound)
}

func TestListSubmissionsFiltersByProblem(t *testing.T) {
	judge := &fakeJudgeClient{rounds: allAcceptedRounds("3", "9", "300")}
	fx := newServiceFixture(t, judge, nil)
	ctx := context.Background()

	_, err := fx.service.Submit(ctx, "user-1", fx.problem.ID, "code", "python")
	require.NoError(t, err)

	listed, err := fx.service.ListSubmissions(ctx, "user-1", secondary.SubmissionFilter{ProblemID: &fx.problem.ID})
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	other := uuid.New()
	listed, err = fx.service.ListSubmissions(ctx, "user-1", secondary.SubmissionFilter{ProblemID: &other})
	require.NoError(t, err)
	assert.Empty(t, listed)

	listed, err = fx.service.ListSubmissions(ctx, "user-2", secondary.SubmissionFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)
}
