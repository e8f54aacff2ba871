package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func TestMergeTimeline(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	visits := []domain.HospitalVisit{
		{ID: uuid.New(), Date: base.Add(48 * time.Hour), Week: 20, Type: domain.VisitCheckup, Notes: "routine"},
	}
	symptoms := []domain.Symptom{
		{ID: uuid.New(), Date: base.Add(72 * time.Hour), Week: 20, Type: domain.SymptomNausea, Severity: 2},
		{ID: uuid.New(), Date: base, Week: 19, Type: domain.SymptomFatigue, Severity: 1},
	}
	milestones := []domain.Milestone{
		{ID: uuid.New(), Date: base.Add(24 * time.Hour), Week: 20, Title: "First kick"},
	}

	entries := MergeTimeline(visits, symptoms, milestones)

	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	// Newest first.
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.After(entries[i-1].Timestamp) {
			t.Errorf("entries out of order at %d: %v after %v", i, entries[i].Timestamp, entries[i-1].Timestamp)
		}
	}
	if entries[0].Type != domain.TimelineSymptom {
		t.Errorf("newest entry type = %q", entries[0].Type)
	}
	if entries[0].Title != "nausea (severity 2/5)" {
		t.Errorf("symptom title = %q", entries[0].Title)
	}
	if entries[len(entries)-1].Type != domain.TimelineSymptom {
		t.Errorf("oldest entry type = %q", entries[len(entries)-1].Type)
	}
}

func TestMergeTimelineEmpty(t *testing.T) {
	if entries := MergeTimeline(nil, nil, nil); len(entries) != 0 {
		t.Errorf("got %d entries for empty input", len(entries))
	}
}
