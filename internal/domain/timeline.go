package domain

import (
	"time"

	"github.com/google/uuid"
)

type TimelineEntryType string

const (
	TimelineVisit     TimelineEntryType = "visit"
	TimelineSymptom   TimelineEntryType = "symptom"
	TimelineMilestone TimelineEntryType = "milestone"
)

// TimelineEntry is one row of the merged pregnancy timeline, derived from
// visits, symptoms and milestones. It is a view, not a stored record.
type TimelineEntry struct {
	Type        TimelineEntryType
	RecordID    uuid.UUID
	Timestamp   time.Time
	Week        int
	Title       string
	Description string
}
