package domain

// TestCase represents a single input/expected-output pair owned by a problem.
// Test cases are immutable once a problem is published.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Explanation    string `json:"explanation,omitempty"`
}
