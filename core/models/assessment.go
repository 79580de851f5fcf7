package models

import (
	"encoding/json"
	"fmt"
)

// Assessment is the quiz attached to a job, keyed 1:1 by job ID.
// Saves replace the full question list; there is no partial update.
type Assessment struct {
	JobID     string     `json:"jobId"`
	Questions []Question `json:"questions"`
}

// Question is a single assessment question. Options are meaningful only
// for the choice types; AnswerKey is optional and used only for scoring.
type Question struct {
	ID         string           `json:"id"`
	Type       QuestionType     `json:"type"`
	Question   string           `json:"question"`
	Options    []string         `json:"options,omitempty"`
	Validation *ValidationRules `json:"validation,omitempty"`
	AnswerKey  *AnswerKey       `json:"answerKey,omitempty"`
}

// QuestionType represents the kind of input a question collects
type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single-choice"
	QuestionMultiChoice  QuestionType = "multi-choice"
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionNumeric      QuestionType = "numeric"
	QuestionFileUpload   QuestionType = "file-upload"
)

// Valid reports whether the question type is recognized
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultiChoice, QuestionShortText,
		QuestionLongText, QuestionNumeric, QuestionFileUpload:
		return true
	}
	return false
}

// Choice reports whether the question type carries an options list
func (t QuestionType) Choice() bool {
	return t == QuestionSingleChoice || t == QuestionMultiChoice
}

// ValidationRules holds per-question validation flags. Required is the
// only recognized rule.
type ValidationRules struct {
	Required bool `json:"required"`
}

// AnswerKey is the correct answer for a scorable question: a single
// option value for single-choice, a set of option values for multi-choice.
// On the wire it is either a JSON string or a JSON array of strings.
type AnswerKey struct {
	Single string
	Multi  []string
}

// Values returns the key as a slice regardless of form.
func (k *AnswerKey) Values() []string {
	if k == nil {
		return nil
	}
	if k.Multi != nil {
		return k.Multi
	}
	return []string{k.Single}
}

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if k.Multi != nil {
		return json.Marshal(k.Multi)
	}
	return json.Marshal(k.Single)
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		k.Single = single
		k.Multi = nil
		return nil
	}
	var multi []string
	if err := json.Unmarshal(data, &multi); err == nil {
		k.Single = ""
		k.Multi = multi
		return nil
	}
	return fmt.Errorf("answer key must be a string or an array of strings")
}
