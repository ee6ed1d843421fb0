package grading

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/domain"
)

// IGradingService defines the interface for grading user code
type IGradingService interface {
	// Run grades code against the problem's visible test cases only
	Run(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.GradedSubmission, error)

	// Submit grades code against the visible test cases followed by the
	// hidden ones and, on full acceptance, marks the problem solved
	Submit(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.GradedSubmission, error)

	// GetSubmission retrieves a submission owned by the caller
	GetSubmission(ctx context.Context, userID string, submissionID uuid.UUID) (*domain.Submission, error)

	// ListSubmissions retrieves the caller's submissions, newest first
	ListSubmissions(ctx context.Context, userID string, filter secondary.SubmissionFilter) ([]*domain.Submission, error)
}
