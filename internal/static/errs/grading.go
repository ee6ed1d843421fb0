package errs

import "errors"

// Input errors, rejected before anything reaches the judge.
var (
	ErrEmptySourceCode     = errors.New("source code is required")
	ErrUnsupportedLanguage = errors.New("language is not supported")
	ErrNoTestCases         = errors.New("problem has no test cases")
	ErrProblemNotFound     = errors.New("problem not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
)

// Grading-infrastructure failures. Distinct from correctness verdicts: a
// judge outage or an exhausted polling budget must never surface as a
// Wrong Answer.
var (
	ErrJudgeUnavailable = errors.New("judge service unavailable")
	ErrGradingTimedOut  = errors.New("grading timed out")
)
