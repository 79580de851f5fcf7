package models

import "time"

// Candidate represents an applicant attached to a job posting
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	JobID string `json:"jobId"`
	Stage Stage  `json:"stage"`
}

// Stage represents the pipeline stage a candidate currently occupies
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists the six pipeline stages in canonical board order.
func Stages() []Stage {
	return []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}
}

// Valid reports whether the stage is one of the six recognized values
func (s Stage) Valid() bool {
	switch s {
	case StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected:
		return true
	}
	return false
}

// TimelineEvent records a single stage change in a candidate's history
type TimelineEvent struct {
	CandidateID string    `json:"candidateId"`
	FromStage   *Stage    `json:"fromStage,omitempty"`
	ToStage     Stage     `json:"toStage"`
	Note        string    `json:"note"`
	At          time.Time `json:"at"`
}
