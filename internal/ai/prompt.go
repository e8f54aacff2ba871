package ai

import (
	"fmt"
	"strings"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

const promptDateFormat = "January 2, 2006"

const promptPreamble = `You are a supportive, knowledgeable AI assistant for a pregnancy tracking app called NewLifeJournal.

IMPORTANT GUIDELINES:
- Provide helpful, evidence-based information about pregnancy
- Be empathetic, supportive, and encouraging
- Always recommend consulting healthcare providers for medical concerns
- Never provide specific medical diagnoses or treatment recommendations
- Use the user's pregnancy data to give personalized, context-aware responses
- Keep responses conversational and easy to understand

USER'S PREGNANCY INFORMATION:`

// buildSystemPrompt renders the pregnancy snapshot into the system prompt
// shared by every provider adapter. It is pure: the same context always
// produces the same prompt, byte for byte.
func buildSystemPrompt(pc PregnancyContext) string {
	p := pc.Pregnancy

	var b strings.Builder
	b.WriteString(promptPreamble)
	fmt.Fprintf(&b, "\n- Mother's name: %s", p.MotherName)
	fmt.Fprintf(&b, "\n- Current week: %d of %d weeks", domain.WeekFromDueDate(p.DueDate, pc.Now), domain.FullTermWeeks)
	fmt.Fprintf(&b, "\n- Due date: %s", p.DueDate.Format(promptDateFormat))
	fmt.Fprintf(&b, "\n- Days until due: %d days", domain.DaysUntilDue(p.DueDate, pc.Now))

	if p.BabyName != "" {
		fmt.Fprintf(&b, "\n- Baby's name: %s", p.BabyName)
	}
	if p.Hospital != "" {
		fmt.Fprintf(&b, "\n- Hospital: %s", p.Hospital)
	}
	if p.DoctorName != "" {
		fmt.Fprintf(&b, "\n- Doctor: %s", p.DoctorName)
	}

	if len(pc.RecentSymptoms) > 0 {
		b.WriteString("\n\nRECENT SYMPTOMS (last 5):")
		for _, s := range limit(pc.RecentSymptoms, 5) {
			kind := strings.Replace(string(s.Type), "_", " ", 1)
			fmt.Fprintf(&b, "\n- %s (severity %d/5) on %s", kind, s.Severity, s.Date.Format(promptDateFormat))
			if s.Notes != "" {
				fmt.Fprintf(&b, " - %s", s.Notes)
			}
		}
	}

	if len(pc.RecentVisits) > 0 {
		b.WriteString("\n\nRECENT HOSPITAL VISITS:")
		for _, v := range limit(pc.RecentVisits, 3) {
			fmt.Fprintf(&b, "\n- %s on %s (week %d)", v.Type, v.Date.Format(promptDateFormat), v.Week)
			if v.Notes != "" {
				fmt.Fprintf(&b, " - %s", v.Notes)
			}
		}
	}

	if len(pc.RecentMilestones) > 0 {
		b.WriteString("\n\nRECENT MILESTONES:")
		for _, m := range limit(pc.RecentMilestones, 3) {
			fmt.Fprintf(&b, "\n- %s on %s", m.Title, m.Date.Format(promptDateFormat))
		}
	}

	return b.String()
}

func limit[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
