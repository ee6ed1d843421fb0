// package judge0 contains the HTTP client for the external batch judge
package judge0

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

var _ secondary.JudgeClient = (*Client)(nil)

// Client implements the JudgeClient port against a Judge0-style batch API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new judge client
func NewClient(cfg *config.JudgeConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

type judgeSubmission struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin,omitempty"`
	ExpectedOutput string  `json:"expected_output,omitempty"`
	CPUTimeLimit   float64 `json:"cpu_time_limit,omitempty"`
	MemoryLimit    int     `json:"memory_limit,omitempty"`
}

type batchSubmitRequest struct {
	Submissions []judgeSubmission `json:"submissions"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type judgeStatus struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type judgeResult struct {
	Token         string      `json:"token"`
	Status        judgeStatus `json:"status"`
	Stdout        *string     `json:"stdout"`
	Stderr        *string     `json:"stderr"`
	CompileOutput *string     `json:"compile_output"`
	Time          *string     `json:"time"`
	Memory        *int        `json:"memory"`
}

type batchResultsResponse struct {
	Submissions []judgeResult `json:"submissions"`
}

// SubmitBatch submits one execution per test case in a single batch call and
// returns the judge's tracking tokens in request order.
func (c *Client) SubmitBatch(ctx context.Context, requests []domain.ExecutionRequest) ([]domain.ExecutionToken, error) {
	payload := batchSubmitRequest{
		Submissions: make([]judgeSubmission, 0, len(requests)),
	}
	for _, req := range requests {
		payload.Submissions = append(payload.Submissions, judgeSubmission{
			SourceCode:     req.SourceCode,
			LanguageID:     req.LanguageID,
			Stdin:          req.Stdin,
			ExpectedOutput: req.ExpectedOutput,
			CPUTimeLimit:   req.CPUTimeLimit,
			MemoryLimit:    req.MemoryLimitKB,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	var tokens []tokenResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/batch-submit", bytes.NewReader(body), &tokens); err != nil {
		return nil, err
	}

	result := make([]domain.ExecutionToken, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, domain.ExecutionToken(t.Token))
	}
	return result, nil
}

// GetBatchResults retrieves the current outcome for every token, in token
// order.
func (c *Client) GetBatchResults(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionOutcome, error) {
	joined := make([]string, 0, len(tokens))
	for _, t := range tokens {
		joined = append(joined, string(t))
	}

	endpoint := fmt.Sprintf("%s/batch-results?tokens=%s", c.baseURL, url.QueryEscape(strings.Join(joined, ",")))

	var resp batchResultsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	outcomes := make([]domain.ExecutionOutcome, 0, len(resp.Submissions))
	for _, r := range resp.Submissions {
		outcomes = append(outcomes, toOutcome(r))
	}
	return outcomes, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build judge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Auth-Token", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("judge request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Judge returned error status", "status", resp.StatusCode, "body", string(data))
		return fmt.Errorf("judge returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode judge response: %w", err)
	}

	c.logger.Debug("Judge call completed", "method", method, "durationMs", time.Since(start).Milliseconds())
	return nil
}

// toOutcome flattens the judge's nullable wire fields. The judge reports
// execution time as a decimal string of seconds and memory as KB.
func toOutcome(r judgeResult) domain.ExecutionOutcome {
	outcome := domain.ExecutionOutcome{
		StatusID:          r.Status.ID,
		StatusDescription: r.Status.Description,
	}
	if r.Stdout != nil {
		outcome.Stdout = *r.Stdout
	}
	if r.Stderr != nil {
		outcome.Stderr = *r.Stderr
	}
	if r.CompileOutput != nil {
		outcome.CompileOutput = *r.CompileOutput
	}
	if r.Time != nil {
		if t, err := strconv.ParseFloat(*r.Time, 64); err == nil {
			outcome.Time = t
		}
	}
	if r.Memory != nil {
		outcome.Memory = *r.Memory
	}
	return outcome
}
