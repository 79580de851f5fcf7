package models

import (
	"encoding/json"
	"testing"
)

func TestAnswerKeyJSONForms(t *testing.T) {
	var q Question
	if err := json.Unmarshal([]byte(`{"id":"q1","type":"single-choice","question":"?","options":["A","B"],"answerKey":"B"}`), &q); err != nil {
		t.Fatalf("unmarshal single key: %v", err)
	}
	if q.AnswerKey == nil || q.AnswerKey.Single != "B" || q.AnswerKey.Multi != nil {
		t.Fatalf("unexpected single key: %+v", q.AnswerKey)
	}

	if err := json.Unmarshal([]byte(`{"id":"q2","type":"multi-choice","question":"?","options":["A","C"],"answerKey":["A","C"]}`), &q); err != nil {
		t.Fatalf("unmarshal multi key: %v", err)
	}
	if q.AnswerKey == nil || len(q.AnswerKey.Multi) != 2 {
		t.Fatalf("unexpected multi key: %+v", q.AnswerKey)
	}

	out, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Question
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.AnswerKey.Multi[0] != "A" || back.AnswerKey.Multi[1] != "C" {
		t.Fatalf("round trip lost key values: %+v", back.AnswerKey)
	}

	if err := json.Unmarshal([]byte(`{"answerKey":42}`), &q); err == nil {
		t.Fatal("expected error for numeric answer key")
	}
}

func TestStageValid(t *testing.T) {
	for _, stage := range Stages() {
		if !stage.Valid() {
			t.Errorf("stage %q should be valid", stage)
		}
	}
	if Stage("interview").Valid() {
		t.Error("unknown stage accepted")
	}
	if len(Stages()) != 6 {
		t.Errorf("expected 6 stages, got %d", len(Stages()))
	}
}
