package routes

import (
	"talentflow/api/rest/handlers"
	"talentflow/core/repository"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *mux.Router, db *repository.DB) {
	jobHandler := handlers.NewJobHandler(repository.NewJobRepository(db))
	candidateHandler := handlers.NewCandidateHandler(repository.NewCandidateRepository(db))
	assessmentHandler := handlers.NewAssessmentHandler(repository.NewAssessmentRepository(db))
	authHandler := handlers.NewAuthHandler(repository.NewUserRepository(db))

	// Job endpoints
	r.HandleFunc("/jobs", jobHandler.ListJobs).Methods("GET")
	r.HandleFunc("/jobs", jobHandler.CreateJob).Methods("POST")
	r.HandleFunc("/jobs/{id}", jobHandler.UpdateJob).Methods("PATCH")
	r.HandleFunc("/jobs/{id}/reorder", jobHandler.ReorderJob).Methods("PATCH")

	// Candidate endpoints
	r.HandleFunc("/candidates", candidateHandler.ListCandidates).Methods("GET")
	r.HandleFunc("/candidates/{id}", candidateHandler.GetCandidate).Methods("GET")
	r.HandleFunc("/candidates/{id}", candidateHandler.UpdateCandidate).Methods("PATCH")
	r.HandleFunc("/candidates/{id}/timeline", candidateHandler.GetTimeline).Methods("GET")

	// Assessment endpoints
	r.HandleFunc("/assessments/{jobId}", assessmentHandler.GetAssessment).Methods("GET")
	r.HandleFunc("/assessments/{jobId}", assessmentHandler.PutAssessment).Methods("PUT")
	r.HandleFunc("/assessments/{jobId}/submit", assessmentHandler.SubmitAssessment).Methods("POST")

	// Auth endpoints
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
}
