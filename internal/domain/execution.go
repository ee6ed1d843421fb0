package domain

// ExecutionRequest is one test-case execution sent to the external judge.
// Ephemeral, never persisted.
type ExecutionRequest struct {
	SourceCode     string
	LanguageID     int
	Stdin          string
	ExpectedOutput string
	CPUTimeLimit   float64 // seconds, 0 means judge default
	MemoryLimitKB  int     // 0 means judge default
}

// ExecutionToken is the opaque handle the judge returns per submitted
// request. Valid only for the lifetime of the polling window.
type ExecutionToken string

// ExecutionOutcome is the judge's result for a single test-case execution.
type ExecutionOutcome struct {
	StatusID          int
	StatusDescription string
	Stdout            string
	Stderr            string
	CompileOutput     string
	Time              float64 // seconds
	Memory            int     // KB
}

// Judge status identifiers. Executions sit in the first two states while the
// judge works; every other identifier is terminal.
const (
	JudgeStatusInQueue             = 1
	JudgeStatusProcessing          = 2
	JudgeStatusAccepted            = 3
	JudgeStatusWrongAnswer         = 4
	JudgeStatusTimeLimitExceeded   = 5
	JudgeStatusCompilationError    = 6
	JudgeStatusRuntimeErrorSIGSEGV = 7
	JudgeStatusRuntimeErrorSIGXFSZ = 8
	JudgeStatusRuntimeErrorSIGFPE  = 9
	JudgeStatusRuntimeErrorSIGABRT = 10
	JudgeStatusRuntimeErrorNZEC    = 11
	JudgeStatusRuntimeErrorOther   = 12
	JudgeStatusInternalError       = 13
	JudgeStatusExecFormatError     = 14
)

// IsTerminal reports whether the outcome has left the judge's queue.
func (o ExecutionOutcome) IsTerminal() bool {
	return o.StatusID != JudgeStatusInQueue && o.StatusID != JudgeStatusProcessing
}
