package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind distinguishes a quick-feedback run from a canonical submit.
type SubmissionKind string

const (
	KindRun    SubmissionKind = "RUN"
	KindSubmit SubmissionKind = "SUBMIT"
)

// Submission is one persisted run/submit action. It is created in Pending
// state at request start and mutated exactly once to its terminal verdict;
// a fresh row is created for every new run/submit.
type Submission struct {
	ID              uuid.UUID      `db:"id"`
	UserID          string         `db:"user_id"`
	ProblemID       uuid.UUID      `db:"problem_id"`
	Code            string         `db:"code"`
	Language        string         `db:"language"`
	Kind            SubmissionKind `db:"kind"`
	Status          VerdictStatus  `db:"status"`
	TestCasesPassed int            `db:"test_cases_passed"`
	TotalTestCases  int            `db:"total_test_cases"`
	Runtime         float64        `db:"runtime"`
	Memory          int            `db:"memory"`
	ErrorMessage    string         `db:"error_message"`
	CreatedAt       time.Time      `db:"created_at"`
	CompletedAt     *time.Time     `db:"completed_at"`
}

// NewSubmission creates a new pending submission
func NewSubmission(userID string, problemID uuid.UUID, code, language string, kind SubmissionKind, totalTestCases int) *Submission {
	return &Submission{
		ID:             uuid.New(),
		UserID:         userID,
		ProblemID:      problemID,
		Code:           code,
		Language:       language,
		Kind:           kind,
		Status:         StatusPending,
		TotalTestCases: totalTestCases,
		CreatedAt:      time.Now(),
	}
}

// ApplyVerdict moves a pending submission to its terminal state.
func (s *Submission) ApplyVerdict(v *SubmissionVerdict) {
	now := time.Now()
	s.Status = v.Status
	s.TestCasesPassed = v.TestCasesPassed
	s.TotalTestCases = v.TotalTestCases
	s.Runtime = v.Runtime
	s.Memory = v.Memory
	s.ErrorMessage = v.ErrorMessage
	s.CompletedAt = &now
}

// MarkFailed records a grading-infrastructure failure. Infra failures are
// kept distinct from correctness verdicts such as Wrong Answer.
func (s *Submission) MarkFailed(status VerdictStatus, message string) {
	now := time.Now()
	s.Status = status
	s.ErrorMessage = message
	s.CompletedAt = &now
}

type SubmissionTable struct {
	ID              string
	UserID          string
	ProblemID       string
	Code            string
	Language        string
	Kind            string
	Status          string
	TestCasesPassed string
	TotalTestCases  string
	Runtime         string
	Memory          string
	ErrorMessage    string
	CreatedAt       string
	CompletedAt     string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:              "id",
		UserID:          "user_id",
		ProblemID:       "problem_id",
		Code:            "code",
		Language:        "language",
		Kind:            "kind",
		Status:          "status",
		TestCasesPassed: "test_cases_passed",
		TotalTestCases:  "total_test_cases",
		Runtime:         "runtime",
		Memory:          "memory",
		ErrorMessage:    "error_message",
		CreatedAt:       "created_at",
		CompletedAt:     "completed_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}
