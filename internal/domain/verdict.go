package domain

import "github.com/google/uuid"

// VerdictStatus represents the status of a graded submission
type VerdictStatus string

const (
	StatusPending           VerdictStatus = "Pending"
	StatusAccepted          VerdictStatus = "Accepted"
	StatusWrongAnswer       VerdictStatus = "Wrong Answer"
	StatusRuntimeError      VerdictStatus = "Runtime Error"
	StatusTimeLimitExceeded VerdictStatus = "Time Limit Exceeded"
	StatusCompilationError  VerdictStatus = "Compilation Error"
	StatusUnknownError      VerdictStatus = "Unknown Error"

	// Infrastructure failures. Never conflated with correctness verdicts.
	StatusGradingFailed   VerdictStatus = "Grading Failed"
	StatusGradingTimedOut VerdictStatus = "Grading Timed Out"
)

var verdictByJudgeStatus = map[int]VerdictStatus{
	JudgeStatusInQueue:             StatusPending,
	JudgeStatusProcessing:          StatusPending,
	JudgeStatusAccepted:            StatusAccepted,
	JudgeStatusWrongAnswer:         StatusWrongAnswer,
	JudgeStatusTimeLimitExceeded:   StatusTimeLimitExceeded,
	JudgeStatusCompilationError:    StatusCompilationError,
	JudgeStatusRuntimeErrorSIGSEGV: StatusRuntimeError,
	JudgeStatusRuntimeErrorSIGXFSZ: StatusRuntimeError,
	JudgeStatusRuntimeErrorSIGFPE:  StatusRuntimeError,
	JudgeStatusRuntimeErrorSIGABRT: StatusRuntimeError,
	JudgeStatusRuntimeErrorNZEC:    StatusRuntimeError,
	JudgeStatusRuntimeErrorOther:   StatusRuntimeError,
	JudgeStatusInternalError:       StatusUnknownError,
	JudgeStatusExecFormatError:     StatusRuntimeError,
}

// VerdictForJudgeStatus maps a judge status id to a verdict status. The
// mapping is total: unrecognized ids fall into the Unknown Error bucket.
func VerdictForJudgeStatus(statusID int) VerdictStatus {
	if status, ok := verdictByJudgeStatus[statusID]; ok {
		return status
	}
	return StatusUnknownError
}

// TestCaseResult pairs a test case with its execution outcome. Result i
// always corresponds to test case i of the graded batch.
type TestCaseResult struct {
	Input          string  `json:"input"`
	ExpectedOutput string  `json:"expectedOutput"`
	ActualOutput   string  `json:"actualOutput"`
	Passed         bool    `json:"passed"`
	Error          string  `json:"error,omitempty"`
	Runtime        float64 `json:"runtime"`
	Memory         int     `json:"memory"`
	IsHidden       bool    `json:"isHidden"`
}

// SubmissionVerdict is the reduced outcome for a whole submission.
// Runtime is the sum of individual test-case times, Memory the maximum
// observed across test cases.
type SubmissionVerdict struct {
	TestCasesPassed int           `json:"testCasesPassed"`
	TotalTestCases  int           `json:"totalTestCases"`
	Runtime         float64       `json:"runtime"`
	Memory          int           `json:"memory"`
	Status          VerdictStatus `json:"status"`
	ErrorMessage    string        `json:"errorMessage,omitempty"`
	OverallAccepted bool          `json:"overallAccepted"`
}

// GradedSubmission is the caller-facing result of a run/submit pipeline.
type GradedSubmission struct {
	SubmissionID uuid.UUID         `json:"submissionId"`
	Verdict      SubmissionVerdict `json:"verdict"`
	Results      []TestCaseResult  `json:"results"`
}
