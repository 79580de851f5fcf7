package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"talentflow/core/models"
)

var (
	// ErrNotFound maps a 404 from the simulated server.
	ErrNotFound = errors.New("not found")
	// ErrServerFailure maps a 500, including chaos-injected ones.
	ErrServerFailure = errors.New("server failure")
)

// baseURL is a placeholder host; the loopback transport never resolves it.
const baseURL = "http://talentflow.local"

// Client is the typed API surface over the simulated transport.
type Client struct {
	http *http.Client
}

// New wraps an http.Client (normally transport.NewClient over the API
// router) with typed endpoint methods.
func New(httpClient *http.Client) *Client {
	return &Client{http: httpClient}
}

// ListJobs fetches jobs sorted by order, with optional filters.
func (c *Client) ListJobs(ctx context.Context, search string, status models.JobStatus) ([]models.Job, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if status != "" {
		q.Set("status", string(status))
	}
	path := "/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CreateJobRequest is the POST /jobs payload.
type CreateJobRequest struct {
	Title  string           `json:"title"`
	Tags   []string         `json:"tags"`
	Status models.JobStatus `json:"status,omitempty"`
}

// CreateJob creates a job at the end of the order sequence.
func (c *Client) CreateJob(ctx context.Context, req CreateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPost, "/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// UpdateJob applies a partial field update to a job.
func (c *Client) UpdateJob(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+id, patch, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ReorderJob moves a job between absolute positions in the full order.
func (c *Client) ReorderJob(ctx context.Context, id string, fromOrder, toOrder int) error {
	body := map[string]int{"fromOrder": fromOrder, "toOrder": toOrder}
	return c.do(ctx, http.MethodPatch, "/jobs/"+id+"/reorder", body, nil)
}

// ListCandidates fetches candidates, capped server-side at 200.
func (c *Client) ListCandidates(ctx context.Context, search string, stage models.Stage) ([]models.Candidate, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if stage != "" {
		q.Set("stage", string(stage))
	}
	path := "/candidates"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var candidates []models.Candidate
	if err := c.do(ctx, http.MethodGet, path, nil, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetCandidate fetches one candidate.
func (c *Client) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.do(ctx, http.MethodGet, "/candidates/"+id, nil, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// UpdateCandidateStage moves a candidate to a new pipeline stage.
func (c *Client) UpdateCandidateStage(ctx context.Context, id string, stage models.Stage) (*models.Candidate, error) {
	body := map[string]models.Stage{"stage": stage}
	var candidate models.Candidate
	if err := c.do(ctx, http.MethodPatch, "/candidates/"+id, body, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// GetTimeline fetches a candidate's stage history in order.
func (c *Client) GetTimeline(ctx context.Context, id string) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	if err := c.do(ctx, http.MethodGet, "/candidates/"+id+"/timeline", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetAssessment fetches a job's assessment; absent assessments come back
// as an empty default.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	var a models.Assessment
	if err := c.do(ctx, http.MethodGet, "/assessments/"+jobID, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// PutAssessment replaces a job's full question list.
func (c *Client) PutAssessment(ctx context.Context, jobID string, questions []models.Question) error {
	body := map[string][]models.Question{"questions": questions}
	return c.do(ctx, http.MethodPut, "/assessments/"+jobID, body, nil)
}

// SubmitResult is the response to an assessment submission.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Score   *Score `json:"score,omitempty"`
}

// Score reports how many keyed questions were answered correctly.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// SubmitAssessment sends a candidate's responses for scoring. Responses
// are keyed by question ID; each value is a single option or a set.
func (c *Client) SubmitAssessment(ctx context.Context, jobID string, responses map[string]models.AnswerKey) (*SubmitResult, error) {
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/assessments/"+jobID+"/submit", responses, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s %s: %w", method, path, ErrServerFailure)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
