package ai

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func testContext() PregnancyContext {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	return PregnancyContext{
		Pregnancy: domain.Pregnancy{
			MotherName: "Anna",
			DueDate:    due,
			BabyName:   "Mia",
			Hospital:   "St. Mary's",
			DoctorName: "Dr. Lee",
		},
		RecentSymptoms: []domain.Symptom{
			{Type: domain.SymptomBackPain, Severity: 3, Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Notes: "after long walks"},
			{Type: domain.SymptomNausea, Severity: 2, Date: time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)},
		},
		RecentVisits: []domain.HospitalVisit{
			{Type: domain.VisitUltrasound, Date: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Week: 27, Notes: "all normal"},
		},
		RecentMilestones: []domain.Milestone{
			{Title: "First kick", Date: time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)},
		},
		Now: now,
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(testContext())

	for _, want := range []string{
		"You are a supportive, knowledgeable AI assistant for a pregnancy tracking app called NewLifeJournal.",
		"IMPORTANT GUIDELINES:",
		"- Mother's name: Anna",
		"- Current week: 29 of 40 weeks",
		"- Due date: April 1, 2026",
		"- Days until due: 76 days",
		"- Baby's name: Mia",
		"- Hospital: St. Mary's",
		"- Doctor: Dr. Lee",
		"RECENT SYMPTOMS (last 5):",
		"- back pain (severity 3/5) on January 10, 2026 - after long walks",
		"- nausea (severity 2/5) on January 8, 2026",
		"RECENT HOSPITAL VISITS:",
		"- ultrasound on January 5, 2026 (week 27) - all normal",
		"RECENT MILESTONES:",
		"- First kick on December 20, 2025",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n\n%s", want, prompt)
		}
	}
}

func TestBuildSystemPromptOmitsEmptySections(t *testing.T) {
	pc := testContext()
	pc.Pregnancy.BabyName = ""
	pc.Pregnancy.Hospital = ""
	pc.Pregnancy.DoctorName = ""
	pc.RecentSymptoms = nil
	pc.RecentVisits = nil
	pc.RecentMilestones = nil

	prompt := buildSystemPrompt(pc)

	for _, banned := range []string{
		"Baby's name", "Hospital:", "Doctor:",
		"RECENT SYMPTOMS", "RECENT HOSPITAL VISITS", "RECENT MILESTONES",
	} {
		if strings.Contains(prompt, banned) {
			t.Errorf("prompt should not contain %q when data is empty", banned)
		}
	}
}

func TestBuildSystemPromptLimitsEntries(t *testing.T) {
	pc := testContext()
	pc.RecentSymptoms = nil
	for i := 0; i < 8; i++ {
		pc.RecentSymptoms = append(pc.RecentSymptoms, domain.Symptom{
			Type: domain.SymptomFatigue, Severity: 1,
			Date: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}

	prompt := buildSystemPrompt(pc)
	if got := strings.Count(prompt, "fatigue"); got != 5 {
		t.Errorf("expected 5 symptom lines, got %d", got)
	}
}

// Every adapter must produce the identical prompt for the same snapshot.
func TestBuildSystemPromptSharedAcrossProviders(t *testing.T) {
	pc := testContext()
	hc := &http.Client{}

	services := []Service{
		newAnthropicService("k", "", hc),
		newOpenAIService("k", "", hc),
		newGeminiService("k", "", hc),
		newCustomService("http://localhost", "", hc),
	}

	want := services[0].BuildSystemPrompt(pc)
	for i, svc := range services[1:] {
		if got := svc.BuildSystemPrompt(pc); got != want {
			t.Errorf("service %d produced a different prompt", i+1)
		}
	}
}
