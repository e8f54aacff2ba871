package domain

import (
	"time"

	"github.com/google/uuid"
)

type BabyStage string

const (
	StageNewborn BabyStage = "newborn"
	StageInfant  BabyStage = "infant"
	StageToddler BabyStage = "toddler"
)

// Baby is created when a pregnancy is completed and tracking hands over
// to the baby side of the app.
type Baby struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	BirthDate       time.Time
	BirthWeight     *float64
	BirthHeight     *float64
	Gender          string
	Stage           BabyStage
	FromPregnancyID *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
