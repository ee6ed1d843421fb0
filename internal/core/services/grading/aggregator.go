package grading

import (
	"strings"

	"gitlab.com/algoforge.net/internal/domain"
)

// gradedCase pairs a test case with its outcome immediately after polling so
// the index correspondence is fixed in one place instead of being carried
// through parallel arrays.
type gradedCase struct {
	testCase domain.TestCase
	outcome  domain.ExecutionOutcome
	hidden   bool
}

// Aggregate reduces per-test-case outcomes into one verdict for the whole
// submission. Pure function: no I/O, no hidden state.
//
// Policy, applied uniformly:
//   - passed compares normalized stdout to the expected output (see
//     NormalizeOutput); the judge's own accept/reject for completed runs is
//     not trusted over this comparison
//   - the submission status is the status of the first failing test case in
//     index order, Accepted only when every case passes
//   - Runtime is the sum of individual times, Memory the maximum observed
//   - ErrorMessage carries the first failing case's compile output or stderr
func Aggregate(outcomes []domain.ExecutionOutcome, testCases []domain.TestCase, visibleCount int) (domain.SubmissionVerdict, []domain.TestCaseResult) {
	paired := make([]gradedCase, len(testCases))
	for i, tc := range testCases {
		paired[i] = gradedCase{testCase: tc, hidden: i >= visibleCount}
		if i < len(outcomes) {
			paired[i].outcome = outcomes[i]
		}
	}

	verdict := domain.SubmissionVerdict{
		TotalTestCases: len(testCases),
		Status:         domain.StatusPending,
	}
	results := make([]domain.TestCaseResult, 0, len(paired))
	firstFailure := -1

	for i, gc := range paired {
		status := domain.VerdictForJudgeStatus(gc.outcome.StatusID)
		passed := false

		switch status {
		case domain.StatusAccepted, domain.StatusWrongAnswer:
			// The run completed; our normalization policy decides the verdict.
			passed = OutputsMatch(gc.outcome.Stdout, gc.testCase.ExpectedOutput)
			if passed {
				status = domain.StatusAccepted
			} else {
				status = domain.StatusWrongAnswer
			}
		}

		errMsg := ""
		if !passed {
			errMsg = failureDetail(gc.outcome)
		}

		results = append(results, domain.TestCaseResult{
			Input:          gc.testCase.Input,
			ExpectedOutput: gc.testCase.ExpectedOutput,
			ActualOutput:   gc.outcome.Stdout,
			Passed:         passed,
			Error:          errMsg,
			Runtime:        gc.outcome.Time,
			Memory:         gc.outcome.Memory,
			IsHidden:       gc.hidden,
		})

		verdict.Runtime += gc.outcome.Time
		if gc.outcome.Memory > verdict.Memory {
			verdict.Memory = gc.outcome.Memory
		}

		if passed {
			verdict.TestCasesPassed++
		} else if firstFailure == -1 {
			firstFailure = i
			verdict.Status = status
			verdict.ErrorMessage = errMsg
		}
	}

	verdict.OverallAccepted = len(testCases) > 0 && verdict.TestCasesPassed == len(testCases)
	if verdict.OverallAccepted {
		verdict.Status = domain.StatusAccepted
	}

	return verdict, results
}

// failureDetail picks the most useful diagnostic text from a failed outcome.
func failureDetail(outcome domain.ExecutionOutcome) string {
	if outcome.CompileOutput != "" {
		return outcome.CompileOutput
	}
	if outcome.Stderr != "" {
		return outcome.Stderr
	}
	return ""
}

// NormalizeOutput applies the output-comparison policy: carriage returns are
// folded, trailing whitespace of every line and trailing newlines of the
// whole text are ignored, internal whitespace is significant.
func NormalizeOutput(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// OutputsMatch compares actual and expected output under NormalizeOutput.
func OutputsMatch(actual, expected string) bool {
	return NormalizeOutput(actual) == NormalizeOutput(expected)
}
