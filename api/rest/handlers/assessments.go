package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"talentflow/core/assessment"
	"talentflow/core/models"
	"talentflow/core/repository"

	"github.com/gorilla/mux"
)

// AssessmentHandler handles assessment-related HTTP requests
type AssessmentHandler struct {
	assessments *repository.AssessmentRepository
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessments *repository.AssessmentRepository) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments}
}

// GetAssessment handles GET /assessments/{jobId}. Jobs without an
// assessment get an empty default, never a 404.
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessments.GetAssessment(r.Context(), mux.Vars(r)["jobId"])
	if err != nil {
		http.Error(w, "Failed to get assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// PutAssessmentRequest carries the full replacement question list.
type PutAssessmentRequest struct {
	Questions []models.Question `json:"questions"`
}

// PutAssessment handles PUT /assessments/{jobId}, a wholesale overwrite.
func (h *AssessmentHandler) PutAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var req PutAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := assessment.ValidateQuestions(req.Questions); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.assessments.PutAssessment(r.Context(), jobID, req.Questions); err != nil {
		http.Error(w, "Failed to save assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SubmitResponse is the reply to an assessment submission.
type SubmitResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Score   assessment.Score `json:"score"`
}

// SubmitAssessment handles POST /assessments/{jobId}/submit. Responses
// are scored against the stored answer keys but not persisted.
func (h *AssessmentHandler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var responses map[string]models.AnswerKey
	if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	a, err := h.assessments.GetAssessment(r.Context(), jobID)
	if err != nil {
		http.Error(w, "Failed to load assessment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	score := assessment.Grade(a.Questions, responses)
	log.Printf("[assessments] submission for job %s: %d/%d", jobID, score.Correct, score.Total)

	writeJSON(w, http.StatusOK, SubmitResponse{
		Success: true,
		Message: "Assessment submitted successfully.",
		Score:   score,
	})
}
