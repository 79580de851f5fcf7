package assessment

import (
	"fmt"

	"talentflow/core/models"
)

// ValidateQuestions checks a question list before a wholesale save:
// recognized types, non-empty options on choice questions, and answer
// keys that reference existing options only.
func ValidateQuestions(questions []models.Question) error {
	for i, q := range questions {
		if !q.Type.Valid() {
			return fmt.Errorf("question %d: unknown type %q", i+1, q.Type)
		}
		if q.Type.Choice() && len(q.Options) == 0 {
			return fmt.Errorf("question %d: %s question needs at least one option", i+1, q.Type)
		}
		if q.AnswerKey == nil {
			continue
		}
		if !q.Type.Choice() {
			return fmt.Errorf("question %d: answer key on non-choice question", i+1)
		}
		allowed := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			allowed[opt] = true
		}
		for _, v := range q.AnswerKey.Values() {
			if !allowed[v] {
				return fmt.Errorf("question %d: answer key value %q is not an option", i+1, v)
			}
		}
	}
	return nil
}

// Score reports correct answers among the scorable questions.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Grade scores submitted responses against the question list. Only
// choice questions carrying an answer key are scorable. Single-choice
// needs an exact match; multi-choice needs the submitted set to equal
// the key set exactly, compared order-independently. No partial credit.
func Grade(questions []models.Question, responses map[string]models.AnswerKey) Score {
	var score Score
	for _, q := range questions {
		if !q.Type.Choice() || q.AnswerKey == nil {
			continue
		}
		score.Total++
		response, ok := responses[q.ID]
		if !ok {
			continue
		}
		switch q.Type {
		case models.QuestionSingleChoice:
			if response.Multi == nil && response.Single == q.AnswerKey.Single {
				score.Correct++
			}
		case models.QuestionMultiChoice:
			if sameSet(response.Values(), q.AnswerKey.Values()) {
				score.Correct++
			}
		}
	}
	return score
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]int, len(a))
	for _, v := range a {
		set[v]++
	}
	for _, v := range b {
		set[v]--
		if set[v] < 0 {
			return false
		}
	}
	return true
}
