package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"talentflow/core/models"
	"talentflow/core/repository"

	"github.com/gorilla/mux"
)

// CandidateHandler handles candidate-related HTTP requests
type CandidateHandler struct {
	candidates *repository.CandidateRepository
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(candidates *repository.CandidateRepository) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// ListCandidates handles GET /candidates?search=&stage=
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	stage := models.Stage(r.URL.Query().Get("stage"))
	if stage != "" && !stage.Valid() {
		http.Error(w, "Unknown stage filter", http.StatusBadRequest)
		return
	}

	candidates, err := h.candidates.ListCandidates(r.Context(), search, stage)
	if err != nil {
		http.Error(w, "Failed to list candidates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// GetCandidate handles GET /candidates/{id}
func (h *CandidateHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := h.candidates.GetCandidate(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Candidate not found"})
		return
	}
	if err != nil {
		http.Error(w, "Failed to get candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// UpdateStageRequest represents a stage transition request
type UpdateStageRequest struct {
	Stage models.Stage `json:"stage"`
}

// UpdateCandidate handles PATCH /candidates/{id}
func (h *CandidateHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := mux.Vars(r)["id"]

	var req UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Stage.Valid() {
		http.Error(w, "Unknown stage", http.StatusBadRequest)
		return
	}

	candidate, err := h.candidates.UpdateStage(r.Context(), candidateID, req.Stage)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Candidate not found"})
		return
	}
	if err != nil {
		http.Error(w, "Failed to update candidate: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// GetTimeline handles GET /candidates/{id}/timeline
func (h *CandidateHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	events, err := h.candidates.ListTimeline(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Failed to get timeline: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
