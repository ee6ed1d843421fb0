package grading

import (
	"context"
	"fmt"
	"strings"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/static/errs"
)

// Dispatcher builds one execution request per test case and submits them to
// the external judge as a single batch.
type Dispatcher struct {
	judge       secondary.JudgeClient
	languageCfg secondary.LanguageConfigRepository
	logger      primary.Logger
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(judge secondary.JudgeClient, languageCfg secondary.LanguageConfigRepository, logger primary.Logger) *Dispatcher {
	return &Dispatcher{
		judge:       judge,
		languageCfg: languageCfg,
		logger:      logger,
	}
}

// Dispatch validates the input locally, submits the batch and returns one
// token per test case in input order. A transport-level failure fails the
// whole submission; either every test case got a token or none did.
func (d *Dispatcher) Dispatch(ctx context.Context, testCases []domain.TestCase, sourceCode, language string) ([]domain.ExecutionToken, error) {
	if strings.TrimSpace(sourceCode) == "" {
		return nil, errs.ErrEmptySourceCode
	}
	if len(testCases) == 0 {
		return nil, errs.ErrNoTestCases
	}

	// Unknown languages must fail here, before any network call.
	languageID, ok := domain.JudgeLanguageID(language)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	limits, err := d.languageCfg.GetLanguageConfig(ctx, language)
	if err != nil {
		d.logger.Error("Failed to get language config", "language", language, "error", err)
		return nil, fmt.Errorf("failed to get language config: %w", err)
	}
	if !limits.Active {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, language)
	}

	requests := make([]domain.ExecutionRequest, 0, len(testCases))
	for _, tc := range testCases {
		requests = append(requests, domain.ExecutionRequest{
			SourceCode:     sourceCode,
			LanguageID:     languageID,
			Stdin:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			CPUTimeLimit:   limits.CPUTimeLimitSec,
			MemoryLimitKB:  limits.MemoryLimitKB,
		})
	}

	tokens, err := d.judge.SubmitBatch(ctx, requests)
	if err != nil {
		d.logger.Error("Judge batch submit failed", "language", language, "testCases", len(testCases), "error", err)
		return nil, fmt.Errorf("%w: %v", errs.ErrJudgeUnavailable, err)
	}
	if len(tokens) != len(testCases) {
		return nil, fmt.Errorf("%w: judge returned %d tokens for %d test cases", errs.ErrJudgeUnavailable, len(tokens), len(testCases))
	}

	d.logger.Debug("Batch dispatched", "testCases", len(testCases), "language", language)
	return tokens, nil
}
