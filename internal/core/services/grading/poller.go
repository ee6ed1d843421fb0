package grading

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/static/errs"
)

// Poller retrieves execution outcomes for a batch of tokens, waiting out the
// judge's asynchronous execution under a bounded policy: a capped number of
// attempts with a backing-off delay between rounds. Stateless across
// invocations.
type Poller struct {
	judge  secondary.JudgeClient
	cfg    *config.JudgeConfig
	logger primary.Logger
}

// NewPoller creates a new poller
func NewPoller(judge secondary.JudgeClient, cfg *config.JudgeConfig, logger primary.Logger) *Poller {
	return &Poller{
		judge:  judge,
		cfg:    cfg,
		logger: logger,
	}
}

// Poll queries the judge until every token reports a terminal status,
// returning outcomes in token order. Exhausting the attempt budget returns
// ErrGradingTimedOut, which callers must keep distinct from "tests ran and
// failed".
func (p *Poller) Poll(ctx context.Context, tokens []domain.ExecutionToken) ([]domain.ExecutionOutcome, error) {
	if len(tokens) == 0 {
		return nil, errs.ErrNoTestCases
	}

	delay := p.cfg.PollInterval
	for attempt := 1; attempt <= p.cfg.MaxPollAttempts; attempt++ {
		outcomes, err := p.judge.GetBatchResults(ctx, tokens)
		if err != nil {
			p.logger.Error("Judge batch results failed", "attempt", attempt, "error", err)
			return nil, fmt.Errorf("%w: %v", errs.ErrJudgeUnavailable, err)
		}
		if len(outcomes) != len(tokens) {
			return nil, fmt.Errorf("%w: judge returned %d outcomes for %d tokens", errs.ErrJudgeUnavailable, len(outcomes), len(tokens))
		}

		if allTerminal(outcomes) {
			return outcomes, nil
		}

		if attempt == p.cfg.MaxPollAttempts {
			break
		}

		p.logger.Debug("Judge still executing", "attempt", attempt, "pending", pendingCount(outcomes))
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > p.cfg.PollMaxInterval {
			delay = p.cfg.PollMaxInterval
		}
	}

	p.logger.Warn("Polling budget exhausted", "tokens", len(tokens), "attempts", p.cfg.MaxPollAttempts)
	return nil, errs.ErrGradingTimedOut
}

func allTerminal(outcomes []domain.ExecutionOutcome) bool {
	for _, o := range outcomes {
		if !o.IsTerminal() {
			return false
		}
	}
	return true
}

func pendingCount(outcomes []domain.ExecutionOutcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.IsTerminal() {
			n++
		}
	}
	return n
}
