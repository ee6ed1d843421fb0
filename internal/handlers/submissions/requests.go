package submissions

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/domain"
)

// GradeRequest represents a request to run or submit code against a problem
type GradeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// TestCaseResultResponse is the per-test-case payload returned to the client.
// Hidden test cases report pass/fail and metrics only; their input and
// outputs are blanked before serialization.
type TestCaseResultResponse struct {
	Input          string  `json:"input,omitempty"`
	ExpectedOutput string  `json:"expectedOutput,omitempty"`
	ActualOutput   string  `json:"actualOutput,omitempty"`
	Passed         bool    `json:"passed"`
	Error          string  `json:"error,omitempty"`
	Runtime        float64 `json:"runtime"`
	Memory         int     `json:"memory"`
	IsHidden       bool    `json:"isHidden"`
}

// GradeResponse represents the verdict returned by a run/submit request
type GradeResponse struct {
	SubmissionID    uuid.UUID                `json:"submissionId"`
	Status          domain.VerdictStatus     `json:"status"`
	TestCasesPassed int                      `json:"testCasesPassed"`
	TotalTestCases  int                      `json:"totalTestCases"`
	Runtime         float64                  `json:"runtime"`
	Memory          int                      `json:"memory"`
	ErrorMessage    string                   `json:"errorMessage,omitempty"`
	Accepted        bool                     `json:"accepted"`
	Results         []TestCaseResultResponse `json:"results"`
}

// SubmissionResponse represents a persisted submission
type SubmissionResponse struct {
	ID              uuid.UUID             `json:"id"`
	ProblemID       uuid.UUID             `json:"problemId"`
	Language        string                `json:"language"`
	Kind            domain.SubmissionKind `json:"kind"`
	Status          domain.VerdictStatus  `json:"status"`
	TestCasesPassed int                   `json:"testCasesPassed"`
	TotalTestCases  int                   `json:"totalTestCases"`
	Runtime         float64               `json:"runtime"`
	Memory          int                   `json:"memory"`
	ErrorMessage    string                `json:"errorMessage,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CompletedAt     *time.Time            `json:"completedAt,omitempty"`
}

func toGradeResponse(graded *domain.GradedSubmission) GradeResponse {
	results := make([]TestCaseResultResponse, 0, len(graded.Results))
	for _, res := range graded.Results {
		out := TestCaseResultResponse{
			Passed:   res.Passed,
			Runtime:  res.Runtime,
			Memory:   res.Memory,
			IsHidden: res.IsHidden,
		}
		if !res.IsHidden {
			out.Input = res.Input
			out.ExpectedOutput = res.ExpectedOutput
			out.ActualOutput = res.ActualOutput
			out.Error = res.Error
		}
		results = append(results, out)
	}

	return GradeResponse{
		SubmissionID:    graded.SubmissionID,
		Status:          graded.Verdict.Status,
		TestCasesPassed: graded.Verdict.TestCasesPassed,
		TotalTestCases:  graded.Verdict.TotalTestCases,
		Runtime:         graded.Verdict.Runtime,
		Memory:          graded.Verdict.Memory,
		ErrorMessage:    graded.Verdict.ErrorMessage,
		Accepted:        graded.Verdict.OverallAccepted,
		Results:         results,
	}
}

func toSubmissionResponse(submission *domain.Submission) SubmissionResponse {
	return SubmissionResponse{
		ID:              submission.ID,
		ProblemID:       submission.ProblemID,
		Language:        submission.Language,
		Kind:            submission.Kind,
		Status:          submission.Status,
		TestCasesPassed: submission.TestCasesPassed,
		TotalTestCases:  submission.TotalTestCases,
		Runtime:         submission.Runtime,
		Memory:          submission.Memory,
		ErrorMessage:    submission.ErrorMessage,
		CreatedAt:       submission.CreatedAt,
		CompletedAt:     submission.CompletedAt,
	}
}
