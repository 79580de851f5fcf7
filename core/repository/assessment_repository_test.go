package repository

import (
	"context"
	"fmt"
	"testing"

	"talentflow/core/models"
)

func TestGetAssessmentDefaultsEmpty(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))
	a, err := repo.GetAssessment(context.Background(), "job-without-assessment")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.JobID != "job-without-assessment" || len(a.Questions) != 0 {
		t.Fatalf("unexpected default: %+v", a)
	}
}

func TestPutAssessmentRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewAssessmentRepository(newTestDB(t))

	questions := make([]models.Question, 0, 5)
	for i := 0; i < 5; i++ {
		questions = append(questions, models.Question{
			ID:         fmt.Sprintf("q%d", i),
			Type:       models.QuestionSingleChoice,
			Question:   fmt.Sprintf("Question %d?", i),
			Options:    []string{"A", "B", "C"},
			Validation: &models.ValidationRules{Required: i%2 == 0},
			AnswerKey:  &models.AnswerKey{Single: "B"},
		})
	}

	if err := repo.PutAssessment(ctx, "job-1", questions); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.GetAssessment(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Questions) != len(questions) {
		t.Fatalf("round trip returned %d questions, want %d", len(got.Questions), len(questions))
	}
	for i, q := range got.Questions {
		want := questions[i]
		if q.ID != want.ID || q.Question != want.Question || q.Type != want.Type {
			t.Errorf("question %d changed: %+v", i, q)
		}
		if q.Validation == nil || q.Validation.Required != want.Validation.Required {
			t.Errorf("question %d validation changed", i)
		}
		if q.AnswerKey == nil || q.AnswerKey.Single != "B" {
			t.Errorf("question %d lost its answer key", i)
		}
	}
}

func TestPutAssessmentOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewAssessmentRepository(newTestDB(t))

	first := []models.Question{
		{ID: "q1", Type: models.QuestionShortText, Question: "Old?"},
		{ID: "q2", Type: models.QuestionLongText, Question: "Older?"},
	}
	if err := repo.PutAssessment(ctx, "job-1", first); err != nil {
		t.Fatalf("first put: %v", err)
	}

	second := []models.Question{{ID: "q9", Type: models.QuestionNumeric, Question: "New?"}}
	if err := repo.PutAssessment(ctx, "job-1", second); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := repo.GetAssessment(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Questions) != 1 || got.Questions[0].ID != "q9" {
		t.Fatalf("save did not overwrite: %+v", got.Questions)
	}
}
