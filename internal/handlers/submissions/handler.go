package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/ports/secondary"
	"gitlab.com/algoforge.net/internal/core/services/grading"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/handlers"
	"gitlab.com/algoforge.net/internal/handlers/response"
	"gitlab.com/algoforge.net/internal/static/errs"
)

// SubmissionHandler handles run/submit API requests
type SubmissionHandler struct {
	gradingService grading.IGradingService
	logger         primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(gradingService grading.IGradingService, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		gradingService: gradingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems/{problemId}/run", h.Run).Methods("POST")
	router.HandleFunc("/api/problems/{problemId}/submit", h.Submit).Methods("POST")
	router.HandleFunc("/api/submissions/{submissionId}", h.GetSubmission).Methods("GET")
	router.HandleFunc("/api/submissions", h.ListSubmissions).Methods("GET")
}

// Run handles quick-feedback grading against the visible test cases
func (h *SubmissionHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.grade(w, r, h.gradingService.Run)
}

// Submit handles canonical grading against visible plus hidden test cases
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.grade(w, r, h.gradingService.Submit)
}

type gradeFunc func(ctx context.Context, userID string, problemID uuid.UUID, code, language string) (*domain.GradedSubmission, error)

func (h *SubmissionHandler) grade(w http.ResponseWriter, r *http.Request, grade gradeFunc) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "unauthenticated", StatusCode: http.StatusUnauthorized})
		return
	}

	vars := mux.Vars(r)
	problemID, err := uuid.Parse(vars["problemId"])
	if err != nil {
		h.logger.Error("Invalid problem ID", "id", vars["problemId"])
		response.WriteError(w, response.ErrorMessage{Message: "invalid problem id", StatusCode: http.StatusBadRequest})
		return
	}

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "invalid request", StatusCode: http.StatusBadRequest})
		return
	}

	graded, err := grade(r.Context(), userID, problemID, req.Code, req.Language)
	if err != nil {
		h.writeGradeError(w, err)
		return
	}

	response.WriteSuccess(w, toGradeResponse(graded))
}

// GetSubmission handles submission retrieval requests
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "unauthenticated", StatusCode: http.StatusUnauthorized})
		return
	}

	vars := mux.Vars(r)
	submissionID, err := uuid.Parse(vars["submissionId"])
	if err != nil {
		h.logger.Error("Invalid submission ID", "id", vars["submissionId"])
		response.WriteError(w, response.ErrorMessage{Message: "invalid submission id", StatusCode: http.StatusBadRequest})
		return
	}

	submission, err := h.gradingService.GetSubmission(r.Context(), userID, submissionID)
	if err != nil {
		if errors.Is(err, errs.ErrSubmissionNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "submission not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get submission", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to get submission", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, toSubmissionResponse(submission))
}

// ListSubmissions handles submission listing requests
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "unauthenticated", StatusCode: http.StatusUnauthorized})
		return
	}

	filter := secondary.SubmissionFilter{}
	if raw := r.URL.Query().Get("problemId"); raw != "" {
		problemID, err := uuid.Parse(raw)
		if err != nil {
			response.WriteError(w, response.ErrorMessage{Message: "invalid problem id", StatusCode: http.StatusBadRequest})
			return
		}
		filter.ProblemID = &problemID
	}

	submissions, err := h.gradingService.ListSubmissions(r.Context(), userID, filter)
	if err != nil {
		h.logger.Error("Failed to list submissions", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to list submissions", StatusCode: http.StatusInternalServerError})
		return
	}

	results := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		results = append(results, toSubmissionResponse(submission))
	}

	response.WriteSuccess(w, map[string][]SubmissionResponse{"submissions": results})
}

// writeGradeError maps the grading error taxonomy onto HTTP statuses. Infra
// failures get gateway statuses so clients can tell them apart from verdicts.
func (h *SubmissionHandler) writeGradeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrProblemNotFound):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusNotFound})
	case errors.Is(err, errs.ErrEmptySourceCode),
		errors.Is(err, errs.ErrUnsupportedLanguage),
		errors.Is(err, errs.ErrNoTestCases):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadRequest})
	case errors.Is(err, errs.ErrJudgeUnavailable):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusBadGateway})
	case errors.Is(err, errs.ErrGradingTimedOut):
		response.WriteError(w, response.ErrorMessage{Message: err.Error(), StatusCode: http.StatusGatewayTimeout})
	default:
		h.logger.Error("Grading failed", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "grading failed", StatusCode: http.StatusInternalServerError})
	}
}
