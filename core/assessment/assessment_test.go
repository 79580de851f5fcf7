package assessment

import (
	"testing"

	"talentflow/core/models"
)

func keyedSingle(id, key string) models.Question {
	return models.Question{
		ID:        id,
		Type:      models.QuestionSingleChoice,
		Question:  "?",
		Options:   []string{"A", "B", "C"},
		AnswerKey: &models.AnswerKey{Single: key},
	}
}

func keyedMulti(id string, key ...string) models.Question {
	return models.Question{
		ID:        id,
		Type:      models.QuestionMultiChoice,
		Question:  "?",
		Options:   []string{"A", "B", "C"},
		AnswerKey: &models.AnswerKey{Multi: key},
	}
}

func TestGradeSingleChoice(t *testing.T) {
	questions := []models.Question{keyedSingle("q1", "B")}

	right := Grade(questions, map[string]models.AnswerKey{"q1": {Single: "B"}})
	if right.Correct != 1 || right.Total != 1 {
		t.Errorf("correct answer scored %+v", right)
	}

	wrong := Grade(questions, map[string]models.AnswerKey{"q1": {Single: "A"}})
	if wrong.Correct != 0 || wrong.Total != 1 {
		t.Errorf("wrong answer scored %+v", wrong)
	}
}

func TestGradeMultiChoiceSetEquality(t *testing.T) {
	questions := []models.Question{keyedMulti("q1", "A", "C")}

	cases := []struct {
		name     string
		response models.AnswerKey
		correct  int
	}{
		{"exact", models.AnswerKey{Multi: []string{"A", "C"}}, 1},
		{"reordered", models.AnswerKey{Multi: []string{"C", "A"}}, 1},
		{"partial", models.AnswerKey{Multi: []string{"A"}}, 0},
		{"superset", models.AnswerKey{Multi: []string{"A", "B", "C"}}, 0},
		{"disjoint", models.AnswerKey{Multi: []string{"B"}}, 0},
	}
	for _, tc := range cases {
		score := Grade(questions, map[string]models.AnswerKey{"q1": tc.response})
		if score.Correct != tc.correct {
			t.Errorf("%s: scored %d, want %d", tc.name, score.Correct, tc.correct)
		}
	}
}

func TestGradeSkipsUnscorableQuestions(t *testing.T) {
	questions := []models.Question{
		keyedSingle("q1", "A"),
		{ID: "q2", Type: models.QuestionShortText, Question: "?"},
		{ID: "q3", Type: models.QuestionSingleChoice, Question: "?", Options: []string{"A"}}, // no key
	}
	score := Grade(questions, map[string]models.AnswerKey{
		"q1": {Single: "A"},
		"q2": {Single: "anything"},
	})
	if score.Total != 1 || score.Correct != 1 {
		t.Errorf("scored %+v, want 1/1", score)
	}
}

func TestGradeUnansweredCountsIncorrect(t *testing.T) {
	questions := []models.Question{keyedSingle("q1", "A"), keyedMulti("q2", "B")}
	score := Grade(questions, nil)
	if score.Total != 2 || score.Correct != 0 {
		t.Errorf("scored %+v, want 0/2", score)
	}
}

func TestValidateQuestions(t *testing.T) {
	valid := []models.Question{
		keyedSingle("q1", "B"),
		{ID: "q2", Type: models.QuestionLongText, Question: "?"},
	}
	if err := ValidateQuestions(valid); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}

	noOptions := []models.Question{{ID: "q1", Type: models.QuestionMultiChoice, Question: "?"}}
	if err := ValidateQuestions(noOptions); err == nil {
		t.Error("choice question without options accepted")
	}

	badKey := []models.Question{keyedSingle("q1", "Z")}
	if err := ValidateQuestions(badKey); err == nil {
		t.Error("answer key outside options accepted")
	}

	badType := []models.Question{{ID: "q1", Type: "essay", Question: "?"}}
	if err := ValidateQuestions(badType); err == nil {
		t.Error("unknown question type accepted")
	}

	keyOnText := []models.Question{{
		ID: "q1", Type: models.QuestionShortText, Question: "?",
		AnswerKey: &models.AnswerKey{Single: "x"},
	}}
	if err := ValidateQuestions(keyOnText); err == nil {
		t.Error("answer key on text question accepted")
	}
}
