package problems

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/algoforge.net/internal/core/ports/primary"
	"gitlab.com/algoforge.net/internal/core/services/catalog"
	"gitlab.com/algoforge.net/internal/domain"
	"gitlab.com/algoforge.net/internal/handlers"
	"gitlab.com/algoforge.net/internal/handlers/response"
	"gitlab.com/algoforge.net/internal/static/errs"
)

// ProblemHandler handles problem browse API requests
type ProblemHandler struct {
	catalogService catalog.ICatalogService
	logger         primary.Logger
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(catalogService catalog.ICatalogService, logger primary.Logger) *ProblemHandler {
	return &ProblemHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for ProblemHandler
func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems", h.ListProblems).Methods("GET")
	router.HandleFunc("/api/problems/{problemId}", h.GetProblem).Methods("GET")
	router.HandleFunc("/api/languages", h.GetLanguages).Methods("GET")
	router.HandleFunc("/api/me/solved", h.GetSolvedProblems).Methods("GET")
}

// ProblemSummaryResponse represents a problem without its test cases
type ProblemSummaryResponse struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ProblemResponse represents a problem with its visible test cases only
type ProblemResponse struct {
	ProblemSummaryResponse
	VisibleTestCases []domain.TestCase `json:"visibleTestCases"`
}

// ListProblems handles problem listing requests
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	problems, err := h.catalogService.ListProblems(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list problems", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to list problems", StatusCode: http.StatusInternalServerError})
		return
	}

	results := make([]ProblemSummaryResponse, 0, len(problems))
	for _, problem := range problems {
		results = append(results, toSummary(problem))
	}

	response.WriteSuccess(w, map[string][]ProblemSummaryResponse{"problems": results})
}

// GetProblem handles problem retrieval requests. Hidden test cases never
// appear in the response.
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	problemID, err := uuid.Parse(vars["problemId"])
	if err != nil {
		h.logger.Error("Invalid problem ID", "id", vars["problemId"])
		response.WriteError(w, response.ErrorMessage{Message: "invalid problem id", StatusCode: http.StatusBadRequest})
		return
	}

	problem, err := h.catalogService.GetProblem(r.Context(), problemID)
	if err != nil {
		if errors.Is(err, errs.ErrProblemNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "problem not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get problem", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to get problem", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, ProblemResponse{
		ProblemSummaryResponse: toSummary(problem),
		VisibleTestCases:       problem.VisibleTestCases,
	})
}

// GetLanguages handles language listing requests
func (h *ProblemHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	languages, err := h.catalogService.GetLanguages(r.Context())
	if err != nil {
		h.logger.Error("Failed to get languages", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to get languages", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, map[string][]string{"languages": languages})
}

// GetSolvedProblems handles solved-set retrieval for the caller
func (h *ProblemHandler) GetSolvedProblems(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.UserIDFrom(r.Context())
	if !ok {
		response.WriteError(w, response.ErrorMessage{Message: "unauthenticated", StatusCode: http.StatusUnauthorized})
		return
	}

	solved, err := h.catalogService.GetSolvedProblems(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get solved problems", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "failed to get solved problems", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, map[string][]uuid.UUID{"solved": solved})
}

func toSummary(problem *domain.Problem) ProblemSummaryResponse {
	return ProblemSummaryResponse{
		ID:         problem.ID,
		Slug:       problem.Slug,
		Title:      problem.Title,
		Difficulty: problem.Difficulty,
		CreatedAt:  problem.CreatedAt,
	}
}
