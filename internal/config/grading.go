package config

import "time"

// GradingConfig configures orchestration policy around the grading pipeline.
type GradingConfig struct {
	// MarkSolvedOnRun lets a fully-accepted "run" over the visible cases mark
	// the problem solved, same as a submit. Off by default: run is a
	// quick-feedback action, not the canonical solved event.
	MarkSolvedOnRun bool

	// ReconcileInterval/PendingCutoff drive the background sweep that fails
	// submissions stranded in Pending by a crash mid-pipeline.
	ReconcileInterval time.Duration
	PendingCutoff     time.Duration
}

func NewGradingConfig() *GradingConfig {
	reconcileIntervalSec := envInt("GRADING_RECONCILE_INTERVAL_SEC", 60)
	pendingCutoffSec := envInt("GRADING_PENDING_CUTOFF_SEC", 300)

	return &GradingConfig{
		MarkSolvedOnRun:   getEnv("GRADING_MARK_SOLVED_ON_RUN", "false") == "true",
		ReconcileInterval: time.Duration(reconcileIntervalSec) * time.Second,
		PendingCutoff:     time.Duration(pendingCutoffSec) * time.Second,
	}
}
