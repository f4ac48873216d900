package model

import (
	"testing"
	"time"
)

func TestWindowOpen(t *testing.T) {
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	before := at.Add(-time.Hour)
	after := at.Add(time.Hour)

	tests := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  bool
	}{
		{"no bounds", nil, nil, true},
		{"inside window", &before, &after, true},
		{"before start", &after, nil, false},
		{"after end", nil, &before, false},
		{"start only, already started", &before, nil, true},
		{"end only, not ended", nil, &after, true},
		{"exactly at start", &at, nil, true},
		{"exactly at end", nil, &at, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := Exam{StartDate: tc.start, EndDate: tc.end}
			if got := e.WindowOpen(at); got != tc.want {
				t.Errorf("WindowOpen = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSubmissionFinalized(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{SubmissionStatusInProgress, false},
		{SubmissionStatusSubmitted, true},
		{SubmissionStatusGraded, true},
	}
	for _, tc := range tests {
		s := Submission{Status: tc.status}
		if got := s.Finalized(); got != tc.want {
			t.Errorf("Finalized(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestQuestionIsObjective(t *testing.T) {
	objective := map[string]bool{
		QuestionTypeMultipleChoice: true,
		QuestionTypeTrueFalse:      true,
		QuestionTypeShortAnswer:    false,
		QuestionTypeEssay:          false,
		QuestionTypeFileUpload:     false,
	}
	for qt, want := range objective {
		q := Question{QuestionType: qt}
		if got := q.IsObjective(); got != want {
			t.Errorf("IsObjective(%q) = %v, want %v", qt, got, want)
		}
	}
}
