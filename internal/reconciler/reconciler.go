package reconciler

import (
	"context"
	"time"

	"gitlab.com/algoforge.net/internal/config"
	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
)

// Reconciler sweeps submissions stranded in Pending by a crash mid-pipeline
// and fails them, so no row waits forever on a verdict that will never come.
type Reconciler struct {
	GradingCfg  *config.GradingConfig
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

func NewReconciler(
	gradingCfg *config.GradingConfig,
	submissions secondary.SubmissionRepository,
	logger primary.Logger,
) *Reconciler {
	return &Reconciler{
		GradingCfg:  gradingCfg,
		submissions: submissions,
		logger:      logger,
	}
}

// Start launches the sweep loop. The loop stops when ctx is cancelled.
func (r *Reconciler) Start(ctx context.Context) {
	ticker := time.NewTicker(r.GradingCfg.ReconcileInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(ctx)
			}
		}
	}()
}

func (r *Reconciler) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.GradingCfg.PendingCutoff)
	swept, err := r.submissions.MarkStalePendingFailed(ctx, cutoff)
	if err != nil {
		r.logger.Error("Failed to sweep stale submissions", "error", err)
		return
	}
	if swept > 0 {
		r.logger.Warn("Swept stale pending submissions", "count", swept)
	}
}
