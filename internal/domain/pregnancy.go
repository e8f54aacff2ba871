package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// FullTermWeeks is the nominal length of a pregnancy.
	FullTermWeeks = 40

	// MinWeek and MaxWeek bound the computed current week.
	MinWeek = 1
	MaxWeek = 42
)

type PregnancyStatus string

const (
	PregnancyActive    PregnancyStatus = "active"
	PregnancyCompleted PregnancyStatus = "completed"
	PregnancyArchived  PregnancyStatus = "archived"
)

type Pregnancy struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	MotherName           string
	DueDate              time.Time
	ConceptionDate       *time.Time
	CurrentWeek          int
	BabyName             string
	Hospital             string
	DoctorName           string
	DoctorPhone          string
	BloodType            string
	Status               PregnancyStatus
	CompletedAt          *time.Time
	TransitionedToBabyID *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type VisitType string

const (
	VisitCheckup    VisitType = "checkup"
	VisitUltrasound VisitType = "ultrasound"
	VisitTest       VisitType = "test"
	VisitEmergency  VisitType = "emergency"
)

type HospitalVisit struct {
	ID            uuid.UUID
	PregnancyID   uuid.UUID
	Date          time.Time
	Week          int
	Type          VisitType
	Notes         string
	Weight        *float64
	BloodPressure string
	NextVisitDate *time.Time
	CreatedAt     time.Time
}

type SymptomType string

const (
	SymptomNausea   SymptomType = "nausea"
	SymptomFatigue  SymptomType = "fatigue"
	SymptomHeadache SymptomType = "headache"
	SymptomBackPain SymptomType = "back_pain"
	SymptomOther    SymptomType = "other"
)

type Symptom struct {
	ID          uuid.UUID
	PregnancyID uuid.UUID
	Date        time.Time
	Week        int
	Type        SymptomType
	Severity    int // 1..5
	Notes       string
	CreatedAt   time.Time
}

type Milestone struct {
	ID          uuid.UUID
	PregnancyID uuid.UUID
	Date        time.Time
	Week        int
	Title       string
	Description string
	ImageURL    string
	CreatedAt   time.Time
}

// WeekFromDueDate back-computes the current gestational week from the due
// date: conception is assumed 40 weeks before the due date, and the result
// is clamped to [MinWeek, MaxWeek].
func WeekFromDueDate(dueDate, now time.Time) int {
	conception := dueDate.Add(-FullTermWeeks * 7 * 24 * time.Hour)
	weeks := int(now.Sub(conception).Hours() / (7 * 24))
	if weeks < MinWeek {
		return MinWeek
	}
	if weeks > MaxWeek {
		return MaxWeek
	}
	return weeks
}

// DaysUntilDue returns the number of days until the due date, rounded up.
// Negative when the due date has passed.
func DaysUntilDue(dueDate, now time.Time) int {
	return int(math.Ceil(dueDate.Sub(now).Hours() / 24))
}

func (p *Pregnancy) IsActive() bool {
	return p.Status == PregnancyActive
}
