package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"talentflow/core/models"
	"talentflow/core/repository"

	"github.com/gorilla/mux"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobs *repository.JobRepository
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobs *repository.JobRepository) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// CreateJobRequest represents the request to create a job
type CreateJobRequest struct {
	Title  string           `json:"title"`
	Tags   []string         `json:"tags"`
	Status models.JobStatus `json:"status,omitempty"`
}

// ListJobs handles GET /jobs?search=&status=
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := models.JobStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		http.Error(w, "Unknown status filter", http.StatusBadRequest)
		return
	}

	jobs, err := h.jobs.ListJobs(r.Context(), search, status)
	if err != nil {
		http.Error(w, "Failed to list jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// CreateJob handles POST /jobs
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if req.Status != "" && !req.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.CreateJob(r.Context(), req.Title, req.Tags, req.Status)
	if err != nil {
		http.Error(w, "Failed to create job: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

// UpdateJob handles PATCH /jobs/{id}
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["id"]

	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.UpdateJob(r.Context(), jobID, patch)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Job not found"})
		return
	}
	if err != nil {
		http.Error(w, "Failed to update job: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// ReorderJobRequest carries absolute positions in the full job order.
type ReorderJobRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

// ReorderJob handles PATCH /jobs/{id}/reorder
func (h *JobHandler) ReorderJob(w http.ResponseWriter, r *http.Request) {
	var req ReorderJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.jobs.ReorderJobs(r.Context(), req.FromOrder, req.ToOrder); err != nil {
		http.Error(w, "Failed to reorder jobs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
