package models

// Job represents a job posting on the board
type Job struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Slug   string    `json:"slug"`
	Status JobStatus `json:"status"`
	Tags   []string  `json:"tags"`
	Order  int       `json:"order"`
}

// JobStatus represents the lifecycle state of a job posting
type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

// Valid reports whether the status is one of the recognized values
func (s JobStatus) Valid() bool {
	return s == JobStatusActive || s == JobStatusArchived
}

// JobPatch holds the client-settable fields of a partial job update.
// Order and Slug are intentionally absent: the slug is fixed at creation
// and order only changes through a reorder call.
type JobPatch struct {
	Title  *string    `json:"title,omitempty"`
	Tags   *[]string  `json:"tags,omitempty"`
	Status *JobStatus `json:"status,omitempty"`
}
